package driving

import (
	"context"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

// ProfileService loads and edits the signed-in user's profile document.
type ProfileService interface {
	// Load fetches the profile; an absent document yields a zero profile.
	Load(ctx context.Context, userID string) (domain.UserProfile, error)

	// Save validates and fully replaces the profile document.
	Save(ctx context.Context, userID string, profile domain.UserProfile) error

	// UploadPhoto stores the picture bytes in the blob store and
	// persists the returned URL on the profile, creating the profile
	// document when absent.
	UploadPhoto(ctx context.Context, userID string, data []byte) (string, error)
}
