package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
	"github.com/Dosada05/tournament-platform/storage"
	"github.com/Dosada05/tournament-platform/validators"
)

type OrganizerApplicationService interface {
	CreateApplication(ctx context.Context, userID int, input models.ApplicationInput) (*models.OrganizerApplication, error)
	// ListAllApplications is admin only, newest first, joined with applicant and reviewer.
	ListAllApplications(ctx context.Context, callerID int) ([]*models.OrganizerApplicationWithUser, error)
	ListOwnApplications(ctx context.Context, callerID int) ([]*models.OrganizerApplication, error)
	// UpdateStatus reviews a pending application. Approval promotes the applicant
	// to organizer in the same transaction.
	UpdateStatus(ctx context.Context, callerID, applicationID int, status models.ApplicationStatus, notes *string) (*models.OrganizerApplication, error)
	AttachDocument(ctx context.Context, callerID, applicationID int, contentType string, size int64, r io.Reader) (*models.OrganizerApplication, error)
}

type organizerApplicationService struct {
	db       TxBeginner
	appRepo  repositories.OrganizerApplicationRepository
	userRepo repositories.UserRepository
	identity IdentityService
	uploader storage.FileUploader
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrganizerApplicationService wires the application lifecycle. uploader may
// be nil, in which case AttachDocument returns ErrAttachmentsDisabled.
func NewOrganizerApplicationService(
	db TxBeginner,
	appRepo repositories.OrganizerApplicationRepository,
	userRepo repositories.UserRepository,
	identity IdentityService,
	uploader storage.FileUploader,
	logger *slog.Logger,
) OrganizerApplicationService {
	return &organizerApplicationService{
		db:       db,
		appRepo:  appRepo,
		userRepo: userRepo,
		identity: identity,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *organizerApplicationService) CreateApplication(ctx context.Context, userID int, input models.ApplicationInput) (*models.OrganizerApplication, error) {
	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	if err := validators.ValidateApplication(input); err != nil {
		return nil, err
	}
	input.Normalize()

	if _, err := s.identity.QueryUserRole(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	hasPending, err := s.appRepo.HasPendingForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending applications: %w", err)
	}
	if hasPending {
		return nil, ErrDuplicatePending
	}

	app := &models.OrganizerApplication{
		UserID:                userID,
		ApplicationReason:     input.ApplicationReason,
		ExperienceDescription: input.Experience(),
		Status:                models.ApplicationPending,
	}

	// Проверка выше не атомарна, уникальный индекс по pending ловит гонку.
	if err := s.appRepo.Create(ctx, nil, app); err != nil {
		switch {
		case errors.Is(err, repositories.ErrApplicationPendingConflict):
			return nil, ErrDuplicatePending
		case errors.Is(err, repositories.ErrApplicationUserInvalid):
			return nil, ErrUnauthenticated
		default:
			return nil, fmt.Errorf("failed to create organizer application: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "organizer application submitted",
		slog.Int("application_id", app.ID),
		slog.Int("user_id", userID),
	)
	return app, nil
}

func (s *organizerApplicationService) ListAllApplications(ctx context.Context, callerID int) ([]*models.OrganizerApplicationWithUser, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListWithUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizer applications: %w", err)
	}
	for _, app := range apps {
		populateAttachmentURL(&app.OrganizerApplication, s.uploader)
	}
	return apps, nil
}

func (s *organizerApplicationService) ListOwnApplications(ctx context.Context, callerID int) ([]*models.OrganizerApplication, error) {
	if callerID <= 0 {
		return nil, ErrUnauthenticated
	}

	apps, err := s.appRepo.ListByUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications of user %d: %w", callerID, err)
	}
	for _, app := range apps {
		populateAttachmentURL(app, s.uploader)
	}
	return apps, nil
}

func (s *organizerApplicationService) UpdateStatus(ctx context.Context, callerID, applicationID int, status models.ApplicationStatus, notes *string) (*models.OrganizerApplication, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if !models.CanTransition(models.ApplicationPending, status) {
		return nil, ErrInvalidTransition
	}
	notes = trimmedOrNil(notes)

	var updated *models.OrganizerApplication
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		app, err := s.appRepo.UpdateStatus(ctx, tx, applicationID, status, callerID, notes)
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrApplicationNotFound):
				return ErrApplicationNotFound
			case errors.Is(err, repositories.ErrApplicationNotPending):
				return ErrInvalidTransition
			default:
				return fmt.Errorf("failed to update application %d: %w", applicationID, err)
			}
		}

		if status == models.ApplicationApproved {
			if _, err := s.userRepo.PromoteToOrganizer(ctx, tx, app.UserID); err != nil {
				return fmt.Errorf("failed to promote user %d: %w", app.UserID, err)
			}
		}

		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	populateAttachmentURL(updated, s.uploader)
	s.logger.InfoContext(ctx, "organizer application reviewed",
		slog.Int("application_id", updated.ID),
		slog.Int("user_id", updated.UserID),
		slog.Int("reviewer_id", callerID),
		slog.String("status", string(updated.Status)),
	)
	return updated, nil
}

func (s *organizerApplicationService) AttachDocument(ctx context.Context, callerID, applicationID int, contentType string, size int64, r io.Reader) (*models.OrganizerApplication, error) {
	if callerID <= 0 {
		return nil, ErrUnauthenticated
	}
	if s.uploader == nil {
		return nil, ErrAttachmentsDisabled
	}

	ext, ok := storage.AttachmentExtension(contentType)
	if !ok {
		return nil, ErrAttachmentTypeNotAllowed
	}
	if size > storage.MaxAttachmentSize {
		return nil, ErrAttachmentTooLarge
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if app.UserID != callerID {
		return nil, ErrForbidden
	}
	if app.Status != models.ApplicationPending {
		return nil, ErrInvalidTransition
	}

	key := storage.AttachmentKey(app.ID, ext, s.now())
	if _, err := s.uploader.Upload(ctx, key, contentType, r); err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	if err := s.appRepo.SetAttachmentKey(ctx, app.ID, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete orphaned attachment", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("failed to save attachment key: %w", err)
	}

	if old := derefString(app.AttachmentKey); old != "" && old != key {
		if err := s.uploader.Delete(ctx, old); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous attachment", slog.String("key", old), slog.Any("error", err))
		}
	}

	app.AttachmentKey = &key
	populateAttachmentURL(app, s.uploader)
	return app, nil
}

func (s *organizerApplicationService) requireAdmin(ctx context.Context, callerID int) error {
	if callerID <= 0 {
		return ErrUnauthenticated
	}
	role, err := s.identity.QueryUserRole(ctx, callerID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUnauthenticated
		}
		return err
	}
	if role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
