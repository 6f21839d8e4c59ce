package models

import (
	"strings"
	"time"
)

// UserRole представляет роли пользователя, соответствующие ENUM user_role в БД.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleOrganizer UserRole = "organizer"
	RoleCoach     UserRole = "coach"
	RolePlayer    UserRole = "player"
	RoleGuest     UserRole = "guest"
)

var roleDescriptions = map[UserRole]string{
	RoleAdmin:     "Review organizer applications and manage the platform",
	RoleOrganizer: "Create and manage tournaments",
	RoleCoach:     "Create and manage teams",
	RolePlayer:    "Join teams and participate in tournaments",
	RoleGuest:     "View tournaments and basic information",
}

func (r UserRole) IsValid() bool {
	_, ok := roleDescriptions[r]
	return ok
}

// Description returns the human readable summary shown next to the role.
func (r UserRole) Description() string {
	return roleDescriptions[r]
}

// StoredRole is the role actually written at signup. Organizer is never
// assigned directly: the account starts as guest until an application is approved.
func (r UserRole) StoredRole() UserRole {
	if r == RoleOrganizer {
		return RoleGuest
	}
	return r
}

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterInput struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8,password_strength"`
	Name     string   `json:"name" validate:"required,min=2"`
	Role     UserRole `json:"role" validate:"required,oneof=organizer coach player guest"`
}

// Normalize trims whitespace around the textual fields; the password is left untouched.
func (in *RegisterInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Role = UserRole(strings.ToLower(strings.TrimSpace(string(in.Role))))
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// ProfileInput is the self-service profile update. The role is not editable here.
type ProfileInput struct {
	Name string `json:"name" validate:"required,min=2"`
}

func (in *ProfileInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
}
