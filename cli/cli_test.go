package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/validators"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Register(ctx context.Context, input models.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, input models.LoginInput) (*models.User, error) {
	args := m.Called(ctx, input)
	return nil, args.Error(1)
}

func (m *mockAuth) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) IssueToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	auth := new(mockAuth)
	auth.On("Register", ctx, models.RegisterInput{
		Email: "root@example.com", Name: "Root", Password: "Secret123", Role: models.RoleAdmin,
	}).Return(&models.User{ID: 1, Role: models.RoleAdmin}, nil).Once()

	user, err := createAdmin(ctx, auth, models.RegisterInput{Email: " Root@Example.com", Name: "Root", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	auth.AssertExpectations(t)
}

func TestCreateAdmin_WeakPassword(t *testing.T) {
	auth := new(mockAuth)
	_, err := createAdmin(context.Background(), auth, models.RegisterInput{Email: "root@example.com", Name: "Root", Password: "password"})
	_, ok := validators.AsFieldErrors(err)
	assert.True(t, ok)
	auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestPrintApplications(t *testing.T) {
	apps := []*models.OrganizerApplicationWithUser{
		{
			OrganizerApplication: models.OrganizerApplication{ID: 2, Status: models.ApplicationApproved, CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
			User:                 &models.ApplicationUser{ID: 3, Name: "Alice", Email: "alice@example.com"},
			Reviewer:             &models.ApplicationUser{ID: 1, Name: "Root"},
		},
		{
			OrganizerApplication: models.OrganizerApplication{ID: 1, Status: models.ApplicationPending, CreatedAt: time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)},
			User:                 &models.ApplicationUser{ID: 4, Name: "Bob", Email: "bob@example.com"},
		},
	}

	var text bytes.Buffer
	require.NoError(t, printApplications(&text, "text", apps))
	assert.Contains(t, text.String(), "alice@example.com")
	assert.Contains(t, text.String(), "2024-05-01 10:00")
	assert.Contains(t, text.String(), "Root")

	var js bytes.Buffer
	require.NoError(t, printApplications(&js, "json", apps))
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "approved", decoded[0]["status"])
}

func TestRootCmd_HasCommands(t *testing.T) {
	root := NewRootCmd()
	for _, path := range [][]string{{"migrate", "up"}, {"migrate", "down"}, {"create-admin"}, {"applications", "list"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
