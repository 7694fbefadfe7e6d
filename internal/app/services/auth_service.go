package services

import (
	"context"
	"fmt"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/repositories"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
	"github.com/hkmu/coursehub/internal/pkg/logger"
	"github.com/hkmu/coursehub/internal/pkg/oauth"
)

// AuthService ties the OAuth provider to local accounts. Credentials never
// pass through this application; the provider hands back a verified profile
// and the service maps it onto a user row.
type AuthService struct {
	provider *oauth.GoogleProvider
	users    *repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(provider *oauth.GoogleProvider, repos *repositories.Repositories) *AuthService {
	return &AuthService{
		provider: provider,
		users:    repos.Users,
	}
}

// AuthURL returns the provider consent URL for the given CSRF state.
func (s *AuthService) AuthURL(state string) string {
	return s.provider.AuthURL(state)
}

// HandleCallback completes the authorization-code flow: exchanges the code
// for a profile, then creates or refreshes the matching local account.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*models.User, error) {
	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("error completing sign-in: %w", err)
	}

	user, err := s.users.UpsertByGoogleID(ctx, profile.ID, profile.Email, profile.Name, profile.Picture)
	if err != nil {
		return nil, fmt.Errorf("error saving user account: %w", err)
	}

	logger.Info().
		Int64("userId", user.ID).
		Str("email", user.Email).
		Msg("User signed in")
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}
