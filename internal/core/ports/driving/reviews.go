package driving

import (
	"context"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

// ReviewService maintains a book's live review feed and the single-
// review-per-user write path.
type ReviewService interface {
	// SubscribeReviews opens a live subscription on a book's reviews,
	// ordered by timestamp descending. Each raw snapshot is enriched
	// with reviewer display names before emission; a snapshot arriving
	// while a previous enrichment is still in flight supersedes it, and
	// the stale batch is never emitted.
	SubscribeReviews(ctx context.Context, bookID, currentUserID string) (<-chan domain.ReviewFeed, Subscription, error)

	// SubmitReview upserts the current user's review of a book. The
	// document is keyed by the user id, so resubmitting fully replaces
	// prior content. Rejected locally, before any remote call, when the
	// trimmed comment is empty or the rating is zero.
	SubmitReview(ctx context.Context, bookID, userID string, rating int, comment string) error
}
