package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
)

// ProfileAttrs are the profile fields written alongside the account.
type ProfileAttrs struct {
	Name string
	Role models.UserRole
}

// IdentityService is the account store: signup, profile updates and lookups.
type IdentityService interface {
	// SignUp creates the account from an already hashed password and returns its id.
	// Organizer is never stored directly, the account starts as guest.
	SignUp(ctx context.Context, email, passwordHash string, attrs ProfileAttrs) (int, error)
	UpdateProfile(ctx context.Context, accountID int, attrs ProfileAttrs) error
	SelectUserProfile(ctx context.Context, id int) (*models.User, error)
	QueryUserRole(ctx context.Context, id int) (models.UserRole, error)
	// ReclaimAccount returns the id of the account registered under email when
	// its stored hash is exactly passwordHash, and ErrAuthEmailTaken otherwise.
	ReclaimAccount(ctx context.Context, email, passwordHash string) (int, error)
}

type identityService struct {
	userRepo repositories.UserRepository
}

func NewIdentityService(userRepo repositories.UserRepository) IdentityService {
	return &identityService{userRepo: userRepo}
}

func (s *identityService) SignUp(ctx context.Context, email, passwordHash string, attrs ProfileAttrs) (int, error) {
	if !attrs.Role.IsValid() {
		return 0, &AuthError{Err: fmt.Errorf("unknown role %q", attrs.Role)}
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         strings.TrimSpace(attrs.Name),
		PasswordHash: passwordHash,
		Role:         attrs.Role.StoredRole(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return 0, ErrAuthEmailTaken
		}
		return 0, &AuthError{Err: err}
	}
	return user.ID, nil
}

func (s *identityService) UpdateProfile(ctx context.Context, accountID int, attrs ProfileAttrs) error {
	if !attrs.Role.IsValid() {
		return &ProfileError{Err: fmt.Errorf("unknown role %q", attrs.Role)}
	}

	err := s.userRepo.UpdateProfile(ctx, accountID, strings.TrimSpace(attrs.Name), attrs.Role)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return &ProfileError{Err: err}
	}
	return nil
}

func (s *identityService) SelectUserProfile(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *identityService) QueryUserRole(ctx context.Context, id int) (models.UserRole, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get role of user %d: %w", id, err)
	}
	return user.Role, nil
}

func (s *identityService) ReclaimAccount(ctx context.Context, email, passwordHash string) (int, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get user by email: %w", err)
	}

	if passwordHash == "" || subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(passwordHash)) != 1 {
		return 0, ErrAuthEmailTaken
	}
	return user.ID, nil
}
