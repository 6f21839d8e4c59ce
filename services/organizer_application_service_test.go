package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
	"github.com/Dosada05/tournament-platform/storage"
	"github.com/Dosada05/tournament-platform/testutil"
	"github.com/Dosada05/tournament-platform/validators"
)

type applicationFixture struct {
	svc      *organizerApplicationService
	appRepo  *MockApplicationRepo
	userRepo *MockUserRepo
	identity *MockIdentityService
	uploader *MockUploader
	sqlMock  sqlmock.Sqlmock
}

func newApplicationFixture(t *testing.T, withUploader bool) *applicationFixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &applicationFixture{
		appRepo:  new(MockApplicationRepo),
		userRepo: new(MockUserRepo),
		identity: new(MockIdentityService),
		sqlMock:  sqlMock,
	}

	var uploader storage.FileUploader
	if withUploader {
		f.uploader = new(MockUploader)
		uploader = f.uploader
	}

	svc := NewOrganizerApplicationService(db, f.appRepo, f.userRepo, f.identity, uploader, testutil.NopLogger())
	f.svc = svc.(*organizerApplicationService)
	f.svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return f
}

func validApplicationInput() models.ApplicationInput {
	return models.ApplicationInput{
		ApplicationReason:     "I have run local chess tournaments for years",
		ExperienceDescription: "Five seasons of club events",
	}
}

func TestCreateApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 3).Return(models.RoleGuest, nil).Once()
		f.appRepo.On("HasPendingForUser", ctx, 3).Return(false, nil).Once()
		f.appRepo.On("Create", ctx, nil, mock.MatchedBy(func(app *models.OrganizerApplication) bool {
			return app.UserID == 3 &&
				app.Status == models.ApplicationPending &&
				app.ApplicationReason == "I have run local chess tournaments for years" &&
				app.ExperienceDescription != nil
		})).Run(func(args mock.Arguments) {
			args.Get(2).(*models.OrganizerApplication).ID = 11
		}).Return(nil).Once()

		app, err := f.svc.CreateApplication(ctx, 3, validApplicationInput())
		require.NoError(t, err)
		assert.Equal(t, 11, app.ID)
		assert.Equal(t, models.ApplicationPending, app.Status)
		f.appRepo.AssertExpectations(t)
	})

	t.Run("ReasonLengthCountedAsSubmitted", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 3).Return(models.RoleGuest, nil).Once()
		f.appRepo.On("HasPendingForUser", ctx, 3).Return(false, nil).Once()
		f.appRepo.On("Create", ctx, nil, mock.MatchedBy(func(app *models.OrganizerApplication) bool {
			return app.ApplicationReason == "123456789 " && app.ExperienceDescription == nil
		})).Return(nil).Once()

		_, err := f.svc.CreateApplication(ctx, 3, models.ApplicationInput{ApplicationReason: "123456789 ", ExperienceDescription: "   "})
		require.NoError(t, err)
		f.appRepo.AssertExpectations(t)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		_, err := f.svc.CreateApplication(ctx, 0, validApplicationInput())
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("ValidationBeforeStorage", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		_, err := f.svc.CreateApplication(ctx, 3, models.ApplicationInput{ApplicationReason: "too short"})
		fe, ok := validators.AsFieldErrors(err)
		require.True(t, ok)
		assert.Contains(t, fe, "application_reason")
		f.appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DuplicatePending", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 3).Return(models.RoleGuest, nil).Once()
		f.appRepo.On("HasPendingForUser", ctx, 3).Return(true, nil).Once()

		_, err := f.svc.CreateApplication(ctx, 3, validApplicationInput())
		assert.ErrorIs(t, err, ErrDuplicatePending)
		f.appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DuplicatePendingRace", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 3).Return(models.RoleGuest, nil).Once()
		f.appRepo.On("HasPendingForUser", ctx, 3).Return(false, nil).Once()
		f.appRepo.On("Create", ctx, nil, mock.Anything).Return(repositories.ErrApplicationPendingConflict).Once()

		_, err := f.svc.CreateApplication(ctx, 3, validApplicationInput())
		assert.ErrorIs(t, err, ErrDuplicatePending)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 99).Return(models.UserRole(""), ErrUserNotFound).Once()

		_, err := f.svc.CreateApplication(ctx, 99, validApplicationInput())
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestListAllApplications(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminOnly", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 2).Return(models.RoleGuest, nil).Once()

		_, err := f.svc.ListAllApplications(ctx, 2)
		assert.ErrorIs(t, err, ErrForbidden)
		f.appRepo.AssertNotCalled(t, "ListWithUsers", mock.Anything)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		_, err := f.svc.ListAllApplications(ctx, 0)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("AttachmentURLs", func(t *testing.T) {
		f := newApplicationFixture(t, true)
		key := "organizer-applications/1/1.pdf"
		list := []*models.OrganizerApplicationWithUser{
			{OrganizerApplication: models.OrganizerApplication{ID: 2}},
			{OrganizerApplication: models.OrganizerApplication{ID: 1, AttachmentKey: &key}},
		}
		f.identity.On("QueryUserRole", ctx, 1).Return(models.RoleAdmin, nil).Once()
		f.appRepo.On("ListWithUsers", ctx).Return(list, nil).Once()
		f.uploader.On("GetPublicURL", key).Return("https://cdn.example.com/" + key).Once()

		apps, err := f.svc.ListAllApplications(ctx, 1)
		require.NoError(t, err)
		require.Len(t, apps, 2)
		assert.Nil(t, apps[0].AttachmentURL)
		require.NotNil(t, apps[1].AttachmentURL)
		assert.Equal(t, "https://cdn.example.com/"+key, *apps[1].AttachmentURL)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("ApprovePromotesInSameTransaction", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 1).Return(models.RoleAdmin, nil).Once()
		f.sqlMock.ExpectBegin()
		f.sqlMock.ExpectCommit()

		notes := "welcome aboard"
		updated := &models.OrganizerApplication{ID: 5, UserID: 3, Status: models.ApplicationApproved}
		f.appRepo.On("UpdateStatus", ctx, mock.Anything, 5, models.ApplicationApproved, 1, &notes).Return(updated, nil).Once()
		f.userRepo.On("PromoteToOrganizer", ctx, mock.Anything, 3).Return(true, nil).Once()

		raw := "  welcome aboard  "
		app, err := f.svc.UpdateStatus(ctx, 1, 5, models.ApplicationApproved, &raw)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationApproved, app.Status)
		f.userRepo.AssertExpectations(t)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("RejectLeavesRole", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 1).Return(models.RoleAdmin, nil).Once()
		f.sqlMock.ExpectBegin()
		f.sqlMock.ExpectCommit()

		updated := &models.OrganizerApplication{ID: 5, UserID: 3, Status: models.ApplicationRejected}
		f.appRepo.On("UpdateStatus", ctx, mock.Anything, 5, models.ApplicationRejected, 1, (*string)(nil)).Return(updated, nil).Once()

		blank := "   "
		_, err := f.svc.UpdateStatus(ctx, 1, 5, models.ApplicationRejected, &blank)
		require.NoError(t, err)
		f.userRepo.AssertNotCalled(t, "PromoteToOrganizer", mock.Anything, mock.Anything, mock.Anything)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("AlreadyReviewed", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 1).Return(models.RoleAdmin, nil).Once()
		f.sqlMock.ExpectBegin()
		f.sqlMock.ExpectRollback()
		f.appRepo.On("UpdateStatus", ctx, mock.Anything, 5, models.ApplicationApproved, 1, (*string)(nil)).
			Return(nil, repositories.ErrApplicationNotPending).Once()

		_, err := f.svc.UpdateStatus(ctx, 1, 5, models.ApplicationApproved, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		f.userRepo.AssertNotCalled(t, "PromoteToOrganizer", mock.Anything, mock.Anything, mock.Anything)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 1).Return(models.RoleAdmin, nil).Once()
		f.sqlMock.ExpectBegin()
		f.sqlMock.ExpectRollback()
		f.appRepo.On("UpdateStatus", ctx, mock.Anything, 404, models.ApplicationRejected, 1, (*string)(nil)).
			Return(nil, repositories.ErrApplicationNotFound).Once()

		_, err := f.svc.UpdateStatus(ctx, 1, 404, models.ApplicationRejected, nil)
		assert.ErrorIs(t, err, ErrApplicationNotFound)
	})

	t.Run("PromotionFailureRollsBack", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 1).Return(models.RoleAdmin, nil).Once()
		f.sqlMock.ExpectBegin()
		f.sqlMock.ExpectRollback()
		updated := &models.OrganizerApplication{ID: 5, UserID: 3, Status: models.ApplicationApproved}
		f.appRepo.On("UpdateStatus", ctx, mock.Anything, 5, models.ApplicationApproved, 1, (*string)(nil)).Return(updated, nil).Once()
		f.userRepo.On("PromoteToOrganizer", ctx, mock.Anything, 3).Return(false, errors.New("deadlock")).Once()

		_, err := f.svc.UpdateStatus(ctx, 1, 5, models.ApplicationApproved, nil)
		assert.Error(t, err)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("InvalidTarget", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 1).Return(models.RoleAdmin, nil).Once()

		_, err := f.svc.UpdateStatus(ctx, 1, 5, models.ApplicationPending, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("NonAdmin", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		f.identity.On("QueryUserRole", ctx, 3).Return(models.RoleOrganizer, nil).Once()

		_, err := f.svc.UpdateStatus(ctx, 3, 5, models.ApplicationApproved, nil)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestAttachDocument(t *testing.T) {
	ctx := context.Background()
	body := strings.NewReader("%PDF-1.4")

	t.Run("Disabled", func(t *testing.T) {
		f := newApplicationFixture(t, false)
		_, err := f.svc.AttachDocument(ctx, 3, 5, "application/pdf", 10, body)
		assert.ErrorIs(t, err, ErrAttachmentsDisabled)
	})

	t.Run("RejectsType", func(t *testing.T) {
		f := newApplicationFixture(t, true)
		_, err := f.svc.AttachDocument(ctx, 3, 5, "text/html", 10, body)
		assert.ErrorIs(t, err, ErrAttachmentTypeNotAllowed)
	})

	t.Run("RejectsSize", func(t *testing.T) {
		f := newApplicationFixture(t, true)
		_, err := f.svc.AttachDocument(ctx, 3, 5, "application/pdf", storage.MaxAttachmentSize+1, body)
		assert.ErrorIs(t, err, ErrAttachmentTooLarge)
	})

	t.Run("OnlyOwner", func(t *testing.T) {
		f := newApplicationFixture(t, true)
		f.appRepo.On("GetByID", ctx, 5).Return(&models.OrganizerApplication{ID: 5, UserID: 4, Status: models.ApplicationPending}, nil).Once()

		_, err := f.svc.AttachDocument(ctx, 3, 5, "application/pdf", 10, body)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("OnlyPending", func(t *testing.T) {
		f := newApplicationFixture(t, true)
		f.appRepo.On("GetByID", ctx, 5).Return(&models.OrganizerApplication{ID: 5, UserID: 3, Status: models.ApplicationRejected}, nil).Once()

		_, err := f.svc.AttachDocument(ctx, 3, 5, "application/pdf", 10, body)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("ReplacesPrevious", func(t *testing.T) {
		f := newApplicationFixture(t, true)
		old := "organizer-applications/5/1.png"
		key := storage.AttachmentKey(5, ".pdf", time.Unix(1700000000, 0))

		f.appRepo.On("GetByID", ctx, 5).Return(&models.OrganizerApplication{ID: 5, UserID: 3, Status: models.ApplicationPending, AttachmentKey: &old}, nil).Once()
		f.uploader.On("Upload", ctx, key, "application/pdf", body).Return(&storage.UploadResult{Key: key}, nil).Once()
		f.appRepo.On("SetAttachmentKey", ctx, 5, &key).Return(nil).Once()
		f.uploader.On("Delete", ctx, old).Return(nil).Once()
		f.uploader.On("GetPublicURL", key).Return("https://cdn.example.com/" + key).Once()

		app, err := f.svc.AttachDocument(ctx, 3, 5, "application/pdf", 10, body)
		require.NoError(t, err)
		require.NotNil(t, app.AttachmentURL)
		assert.Equal(t, "https://cdn.example.com/"+key, *app.AttachmentURL)
		f.uploader.AssertExpectations(t)
		f.appRepo.AssertExpectations(t)
	})
}
