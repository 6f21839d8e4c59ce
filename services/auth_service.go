package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/repositories"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is used when AuthConfig.TokenTTL is zero.
const DefaultTokenTTL = 24 * time.Hour

type AuthService interface {
	// Register creates an account right away. Callers validate the input first.
	Register(ctx context.Context, input models.RegisterInput) (*models.User, error)
	Login(ctx context.Context, input models.LoginInput) (*models.User, error)
	HashPassword(password string) (string, error)
	// IssueToken signs an HS256 token carrying only the user id. The role is
	// never taken from the token since approval changes it.
	IssueToken(user *models.User) (string, error)
}

type AuthConfig struct {
	JWTSecret  []byte
	TokenTTL   time.Duration
	BcryptCost int
}

type authService struct {
	identity IdentityService
	userRepo repositories.UserRepository
	cfg      AuthConfig
	now      func() time.Time
}

func NewAuthService(identity IdentityService, userRepo repositories.UserRepository, cfg AuthConfig) AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		identity: identity,
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *authService) HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return string(hashedPassword), nil
}

func (s *authService) Register(ctx context.Context, input models.RegisterInput) (*models.User, error) {
	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	id, err := s.identity.SignUp(ctx, input.Email, hash, ProfileAttrs{Name: input.Name, Role: input.Role})
	if err != nil {
		return nil, err
	}

	return s.identity.SelectUserProfile(ctx, id)
}

func (s *authService) Login(ctx context.Context, input models.LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""

	return user, nil
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	if user == nil || user.ID <= 0 {
		return "", errors.New("cannot issue token for an unsaved user")
	}

	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     now.Add(s.cfg.TokenTTL).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
