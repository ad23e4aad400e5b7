package services

import (
	"context"
	"fmt"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driving"
	"github.com/shelfwise/shelfwise-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService fronts the auth provider with local validation and seeds
// the profile document on registration.
type AuthService struct {
	provider driven.AuthProvider
	store    driven.DocumentStore
}

// NewAuthService creates an auth service.
func NewAuthService(provider driven.AuthProvider, store driven.DocumentStore) *AuthService {
	return &AuthService{provider: provider, store: store}
}

// SignIn validates the credentials locally, then authenticates.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	creds := domain.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return "", err
	}
	userID, err := s.provider.SignIn(ctx, creds)
	if err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}
	logger.Info("signed in as %s", userID)
	return userID, nil
}

// Register validates, creates the account, and seeds an empty profile
// document so reviewer lookups resolve for brand-new users.
func (s *AuthService) Register(ctx context.Context, email, password, confirm string) (string, error) {
	creds := domain.Credentials{Email: email, Password: password}
	if err := creds.ValidateRegistration(confirm); err != nil {
		return "", err
	}
	userID, err := s.provider.Register(ctx, creds)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	if err := s.store.SetDocument(ctx, userPath(userID), profileToDoc(domain.UserProfile{})); err != nil {
		// The account exists; a missing profile only degrades display
		// names until the user saves one.
		logger.Warn("seed profile for %s failed: %v", userID, err)
	}
	logger.Info("registered %s", userID)
	return userID, nil
}

// SignOut ends the session.
func (s *AuthService) SignOut(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// CurrentUserID returns the signed-in user id.
func (s *AuthService) CurrentUserID() (string, error) {
	return s.provider.CurrentUserID()
}
