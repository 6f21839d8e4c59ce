// Package registration stages in-progress registrations between the
// registration form and the organizer application form.
//
// Records are keyed by an opaque flow token that the HTTP layer hands to the
// client in a cookie, so a reload or a second request picks the flow back up.
package registration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/tournament-platform/models"
)

var ErrNotFound = errors.New("pending registration not found")

// DefaultTTL bounds how long an abandoned flow is kept.
const DefaultTTL = time.Hour

type Store interface {
	SetPending(ctx context.Context, token string, data *models.PendingRegistration) error
	// GetPending returns ErrNotFound when nothing is staged or the record expired.
	GetPending(ctx context.Context, token string) (*models.PendingRegistration, error)
	HasPending(ctx context.Context, token string) (bool, error)
	ClearPending(ctx context.Context, token string) error
	// ResetFlow drops everything known about the flow.
	ResetFlow(ctx context.Context, token string) error
	Ping(ctx context.Context) error
}

// NewFlowToken returns a fresh random flow token.
func NewFlowToken() string {
	return uuid.NewString()
}

// ValidFlowToken rejects anything that is not a token minted by NewFlowToken.
func ValidFlowToken(token string) bool {
	_, err := uuid.Parse(token)
	return err == nil
}

// CurrentStep derives the registration step from the staged record.
func CurrentStep(pending *models.PendingRegistration) models.RegistrationStep {
	if pending != nil {
		return models.StepOrganizerApplication
	}
	return models.StepRegistration
}
