package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driving"
	"github.com/shelfwise/shelfwise-cli/internal/logger"
)

// Ensure ReviewService implements the interface.
var _ driving.ReviewService = (*ReviewService)(nil)

// reviewOrder is the feed order: newest review first. Ties keep the
// store's stable order.
var reviewOrder = driven.OrderBy{Field: "timestamp", Desc: true}

// ReviewService maintains a book's live review feed, enriching each raw
// snapshot with reviewer display names before emission.
type ReviewService struct {
	store driven.DocumentStore
}

// NewReviewService creates a review service.
func NewReviewService(store driven.DocumentStore) *ReviewService {
	return &ReviewService{store: store}
}

// SubscribeReviews opens the live review subscription for a book.
//
// Per raw snapshot: the ordered review list is captured, a display-name
// lookup runs concurrently for every review, and the enriched feed is
// emitted only once all lookups for that snapshot complete. A lookup
// failure for one review falls back to the placeholder name without
// failing the batch. If a newer snapshot arrives while an enrichment
// batch is still in flight, the stale batch's result is discarded and
// never emitted (last snapshot wins).
func (s *ReviewService) SubscribeReviews(
	ctx context.Context, bookID, currentUserID string,
) (<-chan domain.ReviewFeed, driving.Subscription, error) {
	snaps, cancel, err := s.store.SubscribeCollection(ctx, reviewsPath(bookID), reviewOrder)
	if err != nil {
		return nil, nil, fmt.Errorf("subscribe reviews: %w", err)
	}

	out := make(chan domain.ReviewFeed)
	done := make(chan struct{})
	handle := newHandle(func() {
		cancel()
		close(done)
	})
	logger.Debug("review subscription %s opened for book %s", handle.ID(), bookID)

	// generation is bumped per raw snapshot; an enrichment batch only
	// emits when its generation is still the latest on completion. The
	// staleness check and the send happen under sendMu, so a stale batch
	// can never enqueue after a newer batch already emitted.
	generation := atomic.NewUint64(0)
	var sendMu sync.Mutex

	go func() {
		var batches sync.WaitGroup
		defer func() {
			batches.Wait()
			close(out)
		}()
		for snap := range snaps {
			gen := generation.Inc()
			batches.Add(1)
			go func(snap []driven.Document, gen uint64) {
				defer batches.Done()
				feed := s.enrich(ctx, snap, currentUserID)

				sendMu.Lock()
				defer sendMu.Unlock()
				if generation.Load() != gen {
					logger.Debug("review snapshot %d superseded, dropping batch", gen)
					return
				}
				select {
				case out <- feed:
				case <-done:
				case <-ctx.Done():
				}
			}(snap, gen)
		}
	}()

	return out, handle, nil
}

// enrich resolves a display name for every review in the snapshot. The
// lookups run in parallel and the batch waits for all of them, so a
// slow profile lookup delays the whole emission. There is no partial or
// streaming emission. Individual failures degrade to the placeholder.
func (s *ReviewService) enrich(
	ctx context.Context, snap []driven.Document, currentUserID string,
) domain.ReviewFeed {
	reviews := make([]domain.Review, len(snap))
	for i, doc := range snap {
		reviews[i] = reviewFromDoc(doc)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range reviews {
		g.Go(func() error {
			reviews[i].DisplayName = s.displayName(gctx, reviews[i].UserID)
			return nil
		})
	}
	// Lookups never return errors; Wait only orders the batch.
	_ = g.Wait()

	feed := domain.ReviewFeed{Reviews: reviews}
	for i := range reviews {
		if reviews[i].UserID == currentUserID {
			feed.OwnReview = &reviews[i]
			break
		}
	}
	return feed
}

// displayName resolves one reviewer's name, falling back to the
// placeholder when the profile is absent or the lookup fails.
func (s *ReviewService) displayName(ctx context.Context, userID string) string {
	if userID == "" {
		return domain.FallbackDisplayName
	}
	data, err := s.store.GetDocument(ctx, userPath(userID))
	if err != nil {
		logger.Warn("profile lookup for %s failed: %v", userID, err)
		return domain.FallbackDisplayName
	}
	return profileFromDoc(data).DisplayName()
}

// SubmitReview upserts the current user's review. The document is keyed
// by the user id, so a resubmission fully replaces the prior content:
// one review per (book, user), always. Validation failures are rejected
// locally, before any remote call.
func (s *ReviewService) SubmitReview(
	ctx context.Context, bookID, userID string, rating int, comment string,
) error {
	if err := domain.ValidateReview(rating, comment); err != nil {
		return err
	}
	doc := reviewToDoc(userID, rating, strings.TrimSpace(comment))
	if err := s.store.SetDocument(ctx, reviewPath(bookID, userID), doc); err != nil {
		return fmt.Errorf("submit review: %w", err)
	}
	logger.Debug("review by %s for book %s submitted", userID, bookID)
	return nil
}
