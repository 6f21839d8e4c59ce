package models

import "time"

type RegistrationStep string

const (
	StepRegistration          RegistrationStep = "registration"
	StepOrganizerApplication  RegistrationStep = "organizer-application"
	StepRegistrationCompleted RegistrationStep = "completed"
)

// PendingRegistration is the staged registration of a user who chose the
// organizer role and still has to submit the application text.
// AccountID is set once the account exists, so a retried submission skips signup.
type PendingRegistration struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"password_hash"`
	AccountID    *int      `json:"account_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *PendingRegistration) IsOrganizerRegistration() bool {
	return p != nil && p.Role == RoleOrganizer
}
