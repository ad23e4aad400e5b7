package driven

import (
	"context"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

// AuthState is delivered to auth-state observers on every sign-in and
// sign-out. UserID is empty when nobody is signed in.
type AuthState struct {
	UserID string
	Email  string
}

// AuthProvider is the remote authentication contract. It yields a
// stable identifier for the current user; everything session-fatal
// (expiry, revocation) is surfaced through the state observer, not
// through individual calls.
type AuthProvider interface {
	// CurrentUserID returns the signed-in user's identifier, or
	// domain.ErrNotSignedIn.
	CurrentUserID() (string, error)

	// OnAuthStateChange registers an observer invoked on every state
	// transition. The returned CancelFunc removes the observer.
	OnAuthStateChange(fn func(AuthState)) CancelFunc

	// SignIn authenticates with validated credentials and returns the
	// user's identifier.
	SignIn(ctx context.Context, creds domain.Credentials) (string, error)

	// Register creates an account and returns the new identifier.
	Register(ctx context.Context, creds domain.Credentials) (string, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error
}
