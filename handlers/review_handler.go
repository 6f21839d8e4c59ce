package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/services"
	"github.com/Dosada05/tournament-platform/validators"
)

// ReviewHandler is the admin review screen for organizer applications.
type ReviewHandler struct {
	applicationService services.OrganizerApplicationService
}

func NewReviewHandler(applicationService services.OrganizerApplicationService) *ReviewHandler {
	return &ReviewHandler{applicationService: applicationService}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListAllApplications(r.Context(), adminID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"applications": apps}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, models.ApplicationApproved)
}

func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, models.ApplicationRejected)
}

// review applies the decision and answers with the freshly loaded list.
func (h *ReviewHandler) review(w http.ResponseWriter, r *http.Request, status models.ApplicationStatus) {
	adminID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	applicationID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body struct {
		AdminNotes *string `json:"admin_notes"`
	}
	// Тело необязательно.
	if err := readJSON(w, r, &body); err != nil && !errors.Is(err, errEmptyBody) {
		badRequestResponse(w, r, err)
		return
	}

	input := models.ReviewInput{Status: status, AdminNotes: body.AdminNotes}
	if err := validators.ValidateReview(input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	app, err := h.applicationService.UpdateStatus(r.Context(), adminID, applicationID, input.Status, input.AdminNotes)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	apps, err := h.applicationService.ListAllApplications(r.Context(), adminID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"application":  app,
		"applications": apps,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
