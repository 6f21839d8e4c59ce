package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/services"
	"github.com/Dosada05/tournament-platform/storage"
)

// ApplicationHandler serves the applicant side of organizer applications.
type ApplicationHandler struct {
	registrationService services.RegistrationService
	applicationService  services.OrganizerApplicationService
}

func NewApplicationHandler(registrationService services.RegistrationService, applicationService services.OrganizerApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		registrationService: registrationService,
		applicationService:  applicationService,
	}
}

// Apply submits an application for an already signed in user.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input models.ApplicationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.registrationService.ApplyAsExistingUser(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeCompletion(w, r, result)
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListOwnApplications(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"applications": apps}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ApplicationHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	applicationID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxAttachmentSize+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			mapServiceErrorToHTTP(w, r, services.ErrAttachmentTooLarge)
			return
		}
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content type required"))
		return
	}

	app, err := h.applicationService.AttachDocument(r.Context(), userID, applicationID, contentType, header.Size, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"application": app}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
