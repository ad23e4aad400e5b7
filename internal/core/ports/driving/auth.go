package driving

import (
	"context"
)

// AuthService fronts the remote auth provider with local validation.
// Malformed input is rejected before any remote call.
type AuthService interface {
	// SignIn validates and authenticates, returning the user id.
	SignIn(ctx context.Context, email, password string) (string, error)

	// Register validates, creates the account, and seeds an empty
	// profile document for the new user.
	Register(ctx context.Context, email, password, confirm string) (string, error)

	// SignOut ends the session.
	SignOut(ctx context.Context) error

	// CurrentUserID returns the signed-in user id or domain.ErrNotSignedIn.
	CurrentUserID() (string, error)
}
