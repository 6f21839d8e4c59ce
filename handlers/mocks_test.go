package handlers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/services"
)

// MockRegistrationService
type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) StartRegistration(ctx context.Context, flowToken string, input models.RegisterInput) (*services.StartResult, error) {
	args := m.Called(ctx, flowToken, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.StartResult), args.Error(1)
}

func (m *MockRegistrationService) CompleteOrganizerRegistration(ctx context.Context, flowToken string, input models.ApplicationInput) (*services.CompletionResult, error) {
	args := m.Called(ctx, flowToken, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CompletionResult), args.Error(1)
}

func (m *MockRegistrationService) ApplyAsExistingUser(ctx context.Context, userID int, input models.ApplicationInput) (*services.CompletionResult, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CompletionResult), args.Error(1)
}

func (m *MockRegistrationService) CancelRegistration(ctx context.Context, flowToken string) error {
	args := m.Called(ctx, flowToken)
	return args.Error(0)
}

func (m *MockRegistrationService) RegistrationStatus(ctx context.Context, flowToken string) (*services.RegistrationState, error) {
	args := m.Called(ctx, flowToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.RegistrationState), args.Error(1)
}

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input models.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input models.LoginInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) IssueToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

// MockApplicationService
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) CreateApplication(ctx context.Context, userID int, input models.ApplicationInput) (*models.OrganizerApplication, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizerApplication), args.Error(1)
}

func (m *MockApplicationService) ListAllApplications(ctx context.Context, callerID int) ([]*models.OrganizerApplicationWithUser, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrganizerApplicationWithUser), args.Error(1)
}

func (m *MockApplicationService) ListOwnApplications(ctx context.Context, callerID int) ([]*models.OrganizerApplication, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrganizerApplication), args.Error(1)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, callerID, applicationID int, status models.ApplicationStatus, notes *string) (*models.OrganizerApplication, error) {
	args := m.Called(ctx, callerID, applicationID, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizerApplication), args.Error(1)
}

func (m *MockApplicationService) AttachDocument(ctx context.Context, callerID, applicationID int, contentType string, size int64, r io.Reader) (*models.OrganizerApplication, error) {
	args := m.Called(ctx, callerID, applicationID, contentType, size, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizerApplication), args.Error(1)
}

// MockIdentityService
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) SignUp(ctx context.Context, email, passwordHash string, attrs services.ProfileAttrs) (int, error) {
	args := m.Called(ctx, email, passwordHash, attrs)
	return args.Int(0), args.Error(1)
}

func (m *MockIdentityService) UpdateProfile(ctx context.Context, accountID int, attrs services.ProfileAttrs) error {
	args := m.Called(ctx, accountID, attrs)
	return args.Error(0)
}

func (m *MockIdentityService) SelectUserProfile(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentityService) QueryUserRole(ctx context.Context, id int) (models.UserRole, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.UserRole), args.Error(1)
}

func (m *MockIdentityService) ReclaimAccount(ctx context.Context, email, passwordHash string) (int, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Int(0), args.Error(1)
}

// MockDashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboard(ctx context.Context, userID int) (*models.Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dashboard), args.Error(1)
}

// stubPinger
type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error { return p.err }

func (p stubPinger) Ping(context.Context) error { return p.err }
