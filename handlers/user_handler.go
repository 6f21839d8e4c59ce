package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/services"
	"github.com/Dosada05/tournament-platform/validators"
)

type UserHandler struct {
	identityService  services.IdentityService
	dashboardService services.DashboardService
}

func NewUserHandler(identityService services.IdentityService, dashboardService services.DashboardService) *UserHandler {
	return &UserHandler{
		identityService:  identityService,
		dashboardService: dashboardService,
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	user, err := h.identityService.SelectUserProfile(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"user":             user,
		"role_description": user.Role.Description(),
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateMe changes the display name. The role only changes through review.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var input models.ProfileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.Normalize()
	if err := validators.ValidateProfile(input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	user, err := h.identityService.SelectUserProfile(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = h.identityService.UpdateProfile(r.Context(), userID, services.ProfileAttrs{Name: input.Name, Role: user.Role})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	user.Name = input.Name

	err = writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"dashboard": dashboard}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
