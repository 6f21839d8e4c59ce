package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/registration"
	"github.com/Dosada05/tournament-platform/services"
)

const (
	flowCookieName = "registration_flow"
	flowHeader     = "X-Registration-Flow"
)

// FlowCookie carries the registration flow token between the two steps.
type FlowCookie struct {
	Secure bool
	TTL    time.Duration
}

// Token reads the flow token from the cookie, falling back to the header for
// clients without a cookie jar.
func (c FlowCookie) Token(r *http.Request) string {
	if cookie, err := r.Cookie(flowCookieName); err == nil && registration.ValidFlowToken(cookie.Value) {
		return cookie.Value
	}
	if token := r.Header.Get(flowHeader); registration.ValidFlowToken(token) {
		return token
	}
	return ""
}

func (c FlowCookie) Set(w http.ResponseWriter, token string) {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = registration.DefaultTTL
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flowCookieName,
		Value:    token,
		Path:     "/auth/register",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c FlowCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     flowCookieName,
		Value:    "",
		Path:     "/auth/register",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// RegistrationHandler serves step two of organizer registration.
type RegistrationHandler struct {
	registrationService services.RegistrationService
	flow                FlowCookie
}

func NewRegistrationHandler(registrationService services.RegistrationService, flow FlowCookie) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		flow:                flow,
	}
}

func (h *RegistrationHandler) Status(w http.ResponseWriter, r *http.Request) {
	state, err := h.registrationService.RegistrationStatus(r.Context(), h.flow.Token(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"registration": state}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RegistrationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var input models.ApplicationInput

	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.registrationService.CompleteOrganizerRegistration(r.Context(), h.flow.Token(r), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.flow.Clear(w)
	writeCompletion(w, r, result)
}

// Cancel is the back navigation from the application form.
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.registrationService.CancelRegistration(r.Context(), h.flow.Token(r)); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.flow.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func writeCompletion(w http.ResponseWriter, r *http.Request, result *services.CompletionResult) {
	response := jsonResponse{
		"submitted":         result.Submitted,
		"user":              result.User,
		"application":       result.Application,
		"token":             result.Token,
		"redirect_to":       result.RedirectTo,
		"redirect_after_ms": result.RedirectAfter.Milliseconds(),
	}

	err := writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
