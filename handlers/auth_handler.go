package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/services"
	"github.com/Dosada05/tournament-platform/validators"
)

type AuthHandler struct {
	registrationService services.RegistrationService
	authService         services.AuthService
	flow                FlowCookie
}

func NewAuthHandler(registrationService services.RegistrationService, authService services.AuthService, flow FlowCookie) *AuthHandler {
	return &AuthHandler{
		registrationService: registrationService,
		authService:         authService,
		flow:                flow,
	}
}

// Register is step one of registration. Organizers are staged and sent on to
// the application form, every other role gets an account right away.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input models.RegisterInput

	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.registrationService.StartRegistration(r.Context(), h.flow.Token(r), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if result.Step == models.StepOrganizerApplication {
		h.flow.Set(w, result.FlowToken)
		response := jsonResponse{
			"step": result.Step,
			"next": "/auth/register/organizer",
		}
		err = writeJSON(w, http.StatusAccepted, response, http.Header{flowHeader: []string{result.FlowToken}})
		if err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	response := jsonResponse{
		"step":  result.Step,
		"user":  result.User,
		"token": result.Token,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginInput

	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	input.Normalize()
	if err := validators.ValidateLogin(input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	tokenString, err := h.authService.IssueToken(user)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"token": tokenString,
		"user":  user,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
