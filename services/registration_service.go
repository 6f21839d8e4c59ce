package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/registration"
	"github.com/Dosada05/tournament-platform/validators"
)

const (
	// DefaultRedirectDelay is the pause before the client moves to the dashboard
	// after a successful organizer registration.
	DefaultRedirectDelay = 3 * time.Second

	dashboardPath = "/dashboard"
)

type StartResult struct {
	Step      models.RegistrationStep `json:"step"`
	FlowToken string                  `json:"-"`
	User      *models.User            `json:"user,omitempty"`
	Token     string                  `json:"token,omitempty"`
}

type CompletionResult struct {
	Submitted     bool                         `json:"submitted"`
	User          *models.User                 `json:"user"`
	Application   *models.OrganizerApplication `json:"application"`
	Token         string                       `json:"token,omitempty"`
	RedirectTo    string                       `json:"redirect_to"`
	RedirectAfter time.Duration                `json:"-"`
}

// RegistrationState is what the client may learn about a staged flow. The
// password hash is never part of it.
type RegistrationState struct {
	Step           models.RegistrationStep `json:"step"`
	Email          string                  `json:"email,omitempty"`
	Name           string                  `json:"name,omitempty"`
	Role           models.UserRole         `json:"role,omitempty"`
	AccountCreated bool                    `json:"account_created"`
}

type RegistrationService interface {
	StartRegistration(ctx context.Context, flowToken string, input models.RegisterInput) (*StartResult, error)
	CompleteOrganizerRegistration(ctx context.Context, flowToken string, input models.ApplicationInput) (*CompletionResult, error)
	ApplyAsExistingUser(ctx context.Context, userID int, input models.ApplicationInput) (*CompletionResult, error)
	CancelRegistration(ctx context.Context, flowToken string) error
	RegistrationStatus(ctx context.Context, flowToken string) (*RegistrationState, error)
}

type registrationService struct {
	store         registration.Store
	guard         *registration.Guard
	auth          AuthService
	identity      IdentityService
	applications  OrganizerApplicationService
	logger        *slog.Logger
	redirectDelay time.Duration
	now           func() time.Time
}

func NewRegistrationService(
	store registration.Store,
	guard *registration.Guard,
	auth AuthService,
	identity IdentityService,
	applications OrganizerApplicationService,
	logger *slog.Logger,
	redirectDelay time.Duration,
) RegistrationService {
	if redirectDelay <= 0 {
		redirectDelay = DefaultRedirectDelay
	}
	if guard == nil {
		guard = registration.NewGuard()
	}
	return &registrationService{
		store:         store,
		guard:         guard,
		auth:          auth,
		identity:      identity,
		applications:  applications,
		logger:        logger,
		redirectDelay: redirectDelay,
		now:           time.Now,
	}
}

func (s *registrationService) StartRegistration(ctx context.Context, flowToken string, input models.RegisterInput) (*StartResult, error) {
	input.Normalize()
	if err := validators.ValidateRegister(input); err != nil {
		return nil, err
	}

	if input.Role != models.RoleOrganizer {
		// Пользователь вернулся с шага заявки и выбрал другую роль.
		if registration.ValidFlowToken(flowToken) {
			if err := s.store.ResetFlow(ctx, flowToken); err != nil {
				s.logger.WarnContext(ctx, "failed to reset registration flow", slog.Any("error", err))
			}
		}

		user, err := s.auth.Register(ctx, input)
		if err != nil {
			return nil, err
		}
		token, err := s.auth.IssueToken(user)
		if err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "user registered", slog.Int("user_id", user.ID), slog.String("role", string(user.Role)))
		return &StartResult{Step: models.StepRegistrationCompleted, User: user, Token: token}, nil
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	if !registration.ValidFlowToken(flowToken) {
		flowToken = registration.NewFlowToken()
	}

	pending := &models.PendingRegistration{
		Email:        input.Email,
		Name:         input.Name,
		Role:         input.Role,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.store.SetPending(ctx, flowToken, pending); err != nil {
		return nil, fmt.Errorf("failed to stage registration: %w", err)
	}

	return &StartResult{Step: models.StepOrganizerApplication, FlowToken: flowToken}, nil
}

func (s *registrationService) CompleteOrganizerRegistration(ctx context.Context, flowToken string, input models.ApplicationInput) (*CompletionResult, error) {
	if !registration.ValidFlowToken(flowToken) {
		return nil, ErrMissingRegistrationData
	}

	release, ok := s.guard.TryAcquire("flow:" + flowToken)
	if !ok {
		return nil, ErrSubmissionInProgress
	}
	defer release()

	pending, err := s.store.GetPending(ctx, flowToken)
	if err != nil {
		if errors.Is(err, registration.ErrNotFound) {
			return nil, ErrMissingRegistrationData
		}
		return nil, fmt.Errorf("failed to load staged registration: %w", err)
	}
	if !pending.IsOrganizerRegistration() {
		return nil, ErrMissingRegistrationData
	}

	if err := validators.ValidateApplication(input); err != nil {
		return nil, err
	}
	input.Normalize()

	resumed := pending.AccountID != nil
	var accountID int
	if resumed {
		accountID = *pending.AccountID
	} else {
		accountID, resumed, err = s.signUpStaged(ctx, pending)
		if err != nil {
			return nil, err
		}

		pending.AccountID = &accountID
		if err := s.store.SetPending(ctx, flowToken, pending); err != nil {
			s.logger.WarnContext(ctx, "failed to record created account on staged registration",
				slog.Int("user_id", accountID),
				slog.Any("error", err),
			)
		}
	}

	app, err := s.applications.CreateApplication(ctx, accountID, input)
	if err != nil {
		if !resumed || !errors.Is(err, ErrDuplicatePending) {
			return nil, err
		}
		// Заявка уже создана предыдущей попыткой.
		app, err = s.pendingApplication(ctx, accountID)
		if err != nil {
			return nil, err
		}
	}

	// Данные шага удаляются только после успешного ответа, иначе повтор продолжит с заявки.
	result, err := s.completion(ctx, accountID, app)
	if err != nil {
		return nil, err
	}

	if err := s.store.ClearPending(ctx, flowToken); err != nil {
		s.logger.WarnContext(ctx, "failed to clear staged registration", slog.Any("error", err))
	}
	return result, nil
}

// signUpStaged creates the account for a staged registration. When the email
// is taken by an account created from this same staged record (the password
// hash matches), that account is reused and reported as resumed.
func (s *registrationService) signUpStaged(ctx context.Context, pending *models.PendingRegistration) (int, bool, error) {
	accountID, err := s.identity.SignUp(ctx, pending.Email, pending.PasswordHash, ProfileAttrs{
		Name: pending.Name,
		Role: pending.Role,
	})
	if err == nil {
		return accountID, false, nil
	}
	if !errors.Is(err, ErrAuthEmailTaken) {
		return 0, false, err
	}

	accountID, reclaimErr := s.identity.ReclaimAccount(ctx, pending.Email, pending.PasswordHash)
	if reclaimErr != nil {
		if !errors.Is(reclaimErr, ErrAuthEmailTaken) && !errors.Is(reclaimErr, ErrUserNotFound) {
			s.logger.WarnContext(ctx, "failed to check existing account for staged registration", slog.Any("error", reclaimErr))
		}
		return 0, false, err
	}

	s.logger.InfoContext(ctx, "resuming staged registration with existing account", slog.Int("user_id", accountID))
	return accountID, true, nil
}

func (s *registrationService) ApplyAsExistingUser(ctx context.Context, userID int, input models.ApplicationInput) (*CompletionResult, error) {
	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	release, ok := s.guard.TryAcquire("user:" + strconv.Itoa(userID))
	if !ok {
		return nil, ErrSubmissionInProgress
	}
	defer release()

	app, err := s.applications.CreateApplication(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	return s.completion(ctx, userID, app)
}

func (s *registrationService) CancelRegistration(ctx context.Context, flowToken string) error {
	if !registration.ValidFlowToken(flowToken) {
		return nil
	}
	if err := s.store.ResetFlow(ctx, flowToken); err != nil {
		return fmt.Errorf("failed to reset registration flow: %w", err)
	}
	return nil
}

func (s *registrationService) RegistrationStatus(ctx context.Context, flowToken string) (*RegistrationState, error) {
	if !registration.ValidFlowToken(flowToken) {
		return &RegistrationState{Step: models.StepRegistration}, nil
	}

	pending, err := s.store.GetPending(ctx, flowToken)
	if err != nil {
		if errors.Is(err, registration.ErrNotFound) {
			return &RegistrationState{Step: models.StepRegistration}, nil
		}
		return nil, fmt.Errorf("failed to load staged registration: %w", err)
	}

	return &RegistrationState{
		Step:           registration.CurrentStep(pending),
		Email:          pending.Email,
		Name:           pending.Name,
		Role:           pending.Role,
		AccountCreated: pending.AccountID != nil,
	}, nil
}

func (s *registrationService) pendingApplication(ctx context.Context, userID int) (*models.OrganizerApplication, error) {
	apps, err := s.applications.ListOwnApplications(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, app := range apps {
		if app.Status == models.ApplicationPending {
			return app, nil
		}
	}
	return nil, ErrApplicationNotFound
}

func (s *registrationService) completion(ctx context.Context, userID int, app *models.OrganizerApplication) (*CompletionResult, error) {
	user, err := s.identity.SelectUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "organizer registration submitted",
		slog.Int("user_id", userID),
		slog.Int("application_id", app.ID),
	)

	return &CompletionResult{
		Submitted:     true,
		User:          user,
		Application:   app,
		Token:         token,
		RedirectTo:    dashboardPath,
		RedirectAfter: s.redirectDelay,
	}, nil
}
