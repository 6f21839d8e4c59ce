package services

import "errors"

// Общие ошибки сервисного слоя, маппятся на HTTP в handlers.mapServiceErrorToHTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Аутентификация и авторизация
	ErrUnauthenticated        = errors.New("you must be logged in to perform this action")
	ErrForbidden              = errors.New("operation not allowed for the current user")
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")

	// Заявки организатора
	ErrDuplicatePending    = errors.New("you already have a pending organizer application")
	ErrInvalidTransition   = errors.New("application already reviewed")
	ErrApplicationNotFound = errors.New("organizer application not found")
	ErrUserNotFound        = errors.New("user not found")

	// Двухшаговая регистрация
	ErrMissingRegistrationData = errors.New("registration data not found, please start over")
	ErrSubmissionInProgress    = errors.New("a submission is already in progress")

	// Вложения к заявке
	ErrAttachmentsDisabled      = errors.New("application attachments are not configured")
	ErrAttachmentTooLarge       = errors.New("attachment is too large")
	ErrAttachmentTypeNotAllowed = errors.New("attachment type is not allowed")
)

// AuthError is a failed account creation reported by the identity store.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "registration failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ProfileError is a failed profile update reported by the identity store.
type ProfileError struct {
	Err error
}

func (e *ProfileError) Error() string {
	return "profile update failed: " + e.Err.Error()
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}
