package domain

import (
	"fmt"
	"strings"
	"time"
)

// FallbackDisplayName is used when a reviewer's profile lookup fails or
// the profile does not exist. The rest of the batch proceeds normally.
const FallbackDisplayName = "unknown user"

// Review is one user's review of one book. The review document is keyed
// by the reviewing user's identifier, which enforces at most one review
// per (book, user) pair: resubmitting replaces the prior content.
type Review struct {
	// UserID identifies the reviewing user and doubles as the document key.
	UserID string

	// Rating is an integer star rating, 1-5.
	Rating int

	// Comment is the review text. Non-empty after trimming.
	Comment string

	// Timestamp is server-assigned on write, monotonic per write.
	Timestamp time.Time

	// DisplayName is the reviewer's resolved name. Denormalised at read
	// time via a profile lookup; never stored remotely.
	DisplayName string
}

// ValidateReview checks a review submission before any remote call.
func ValidateReview(rating int, comment string) error {
	if strings.TrimSpace(comment) == "" {
		return fmt.Errorf("%w: comment must not be empty", ErrInvalidInput)
	}
	if rating == 0 {
		return fmt.Errorf("%w: rating is required", ErrInvalidInput)
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	return nil
}

// ReviewFeed is one enriched emission of a book's review subscription.
// Reviews are ordered by timestamp descending; OwnReview points into
// Reviews when the current user has already reviewed the book.
type ReviewFeed struct {
	Reviews   []Review
	OwnReview *Review
}

// Review window constants.
const (
	// InitialVisibleReviews is the window size when a screen opens.
	InitialVisibleReviews = 5

	// LoadMoreStep is how much the window grows per "load more".
	LoadMoreStep = 10
)

// ReviewWindow is the visible-window cursor over a review feed. The
// window only ever grows within a screen's lifetime; rendering clamps it
// to the feed length.
type ReviewWindow struct {
	visible int
}

// NewReviewWindow returns a window at its initial size.
func NewReviewWindow() *ReviewWindow {
	return &ReviewWindow{visible: InitialVisibleReviews}
}

// LoadMore grows the window by one step.
func (w *ReviewWindow) LoadMore() {
	w.visible += LoadMoreStep
}

// Visible returns the raw cursor value, unclamped.
func (w *ReviewWindow) Visible() int {
	return w.visible
}

// Clamp returns the number of reviews to render for a feed of the given
// length: min(visible, total).
func (w *ReviewWindow) Clamp(total int) int {
	if total < w.visible {
		return total
	}
	return w.visible
}
