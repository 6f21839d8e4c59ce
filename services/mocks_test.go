package services

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
	"github.com/Dosada05/tournament-platform/storage"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, id int, name string, role models.UserRole) error {
	args := m.Called(ctx, id, name, role)
	return args.Error(0)
}

func (m *MockUserRepo) PromoteToOrganizer(ctx context.Context, exec repositories.SQLExecutor, id int) (bool, error) {
	args := m.Called(ctx, exec, id)
	return args.Bool(0), args.Error(1)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, exec repositories.SQLExecutor, app *models.OrganizerApplication) error {
	args := m.Called(ctx, exec, app)
	return args.Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id int) (*models.OrganizerApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizerApplication), args.Error(1)
}

func (m *MockApplicationRepo) HasPendingForUser(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) ListWithUsers(ctx context.Context) ([]*models.OrganizerApplicationWithUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrganizerApplicationWithUser), args.Error(1)
}

func (m *MockApplicationRepo) ListByUser(ctx context.Context, userID int) ([]*models.OrganizerApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrganizerApplication), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.ApplicationStatus, reviewerID int, notes *string) (*models.OrganizerApplication, error) {
	args := m.Called(ctx, exec, id, status, reviewerID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizerApplication), args.Error(1)
}

func (m *MockApplicationRepo) SetAttachmentKey(ctx context.Context, id int, key *string) error {
	args := m.Called(ctx, id, key)
	return args.Error(0)
}

// MockIdentityService
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) SignUp(ctx context.Context, email, passwordHash string, attrs ProfileAttrs) (int, error) {
	args := m.Called(ctx, email, passwordHash, attrs)
	return args.Int(0), args.Error(1)
}

func (m *MockIdentityService) UpdateProfile(ctx context.Context, accountID int, attrs ProfileAttrs) error {
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

// MockUploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	args := m.Called(ctx, key, contentType, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}

func (m *MockUploader) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockUploader) GetPublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
