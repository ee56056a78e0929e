package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/company-task-api/internal/auth"
	"github.com/yukikurage/company-task-api/internal/models"
)

// AuthService exchanges credentials for access tokens.
type AuthService struct {
	users  *UserService
	tokens *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *UserService, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Login verifies credentials and issues a token with the default lifetime.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user, 0)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// CurrentUser loads the user a token was issued to.
func (s *AuthService) CurrentUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetUser(ctx, id)
}
