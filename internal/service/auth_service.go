package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VictorWong123/shopnsplit/internal/auth"
	"github.com/VictorWong123/shopnsplit/internal/models"
)

// AuthService handles registration and login, issuing a session token on
// success.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates an account and returns the user with a fresh token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}
