package models

import (
	"strings"
	"time"
)

// ApplicationStatus представляет статусы заявки, соответствующие ENUM application_status в БД.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// CanTransition reports whether an application may move from one status to another.
// pending -> approved | rejected; approved and rejected are terminal.
func CanTransition(current, next ApplicationStatus) bool {
	allowed := map[ApplicationStatus][]ApplicationStatus{
		ApplicationPending:  {ApplicationApproved, ApplicationRejected},
		ApplicationApproved: {},
		ApplicationRejected: {},
	}
	for _, s := range allowed[current] {
		if s == next {
			return true
		}
	}
	return false
}

type OrganizerApplication struct {
	ID                    int               `json:"id" db:"id"`
	UserID                int               `json:"user_id" db:"user_id"`
	ApplicationReason     string            `json:"application_reason" db:"application_reason"`
	ExperienceDescription *string           `json:"experience_description" db:"experience_description"`
	Status                ApplicationStatus `json:"status" db:"status"`
	AdminNotes            *string           `json:"admin_notes" db:"admin_notes"`
	ReviewedBy            *int              `json:"reviewed_by" db:"reviewed_by"`
	ReviewedAt            *time.Time        `json:"reviewed_at" db:"reviewed_at"`
	AttachmentKey         *string           `json:"-" db:"attachment_key"`
	AttachmentURL         *string           `json:"attachment_url,omitempty" db:"-"`
	CreatedAt             time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at" db:"updated_at"`
}

// ApplicationUser is the slice of a user profile joined onto applications.
type ApplicationUser struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role,omitempty"`
}

type OrganizerApplicationWithUser struct {
	OrganizerApplication
	User     *ApplicationUser `json:"user"`
	Reviewer *ApplicationUser `json:"reviewer,omitempty"`
}

type ApplicationInput struct {
	ApplicationReason     string `json:"application_reason" validate:"required,min=10,max=500"`
	ExperienceDescription string `json:"experience_description" validate:"max=1000"`
}

// Normalize trims the optional experience text. The reason is kept as
// submitted: its length is validated and stored as is.
func (in *ApplicationInput) Normalize() {
	in.ExperienceDescription = strings.TrimSpace(in.ExperienceDescription)
}

// Experience returns nil for an empty description so it is stored as NULL.
func (in ApplicationInput) Experience() *string {
	if in.ExperienceDescription == "" {
		return nil
	}
	s := in.ExperienceDescription
	return &s
}

type ReviewInput struct {
	Status     ApplicationStatus `json:"status" validate:"required,oneof=approved rejected"`
	AdminNotes *string           `json:"admin_notes" validate:"omitempty,max=1000"`
}
