package driving

import (
	"context"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

// LibraryService maintains a user's saved-book set: the live membership
// subscription, the toggle write path, and the materialized "my books"
// list resolved against the catalog.
type LibraryService interface {
	// SubscribeSaved opens a live subscription on the user's saved set.
	// Every remote change event produces exactly one emission carrying
	// the complete current set; consumers treat each emission as an
	// authoritative replacement, never an incremental merge.
	SubscribeSaved(ctx context.Context, userID string) (<-chan domain.SavedBookSet, Subscription, error)

	// SubscribeMyBooks materializes the saved set into full catalog
	// records, re-resolving on every set change. Order follows the saved
	// set's declared order; ids unknown upstream are dropped.
	SubscribeMyBooks(ctx context.Context, userID string) (<-chan []domain.BookRecord, Subscription, error)

	// ToggleSaved adds the book to the set when absent and removes it
	// when present. Fire-and-forget relative to the subscription: no
	// optimistic local mutation, the next emission is the sole source of
	// truth. Remote failure is returned and leaves the set unchanged.
	ToggleSaved(ctx context.Context, userID string, book domain.BookRecord) error

	// Materialize resolves one snapshot of the saved set without a
	// subscription, for one-shot consumers.
	Materialize(ctx context.Context, set domain.SavedBookSet) ([]domain.BookRecord, error)
}
