package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/shelfwise-cli/internal/adapters/driven/storage/memory"
	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

func seedProfile(t *testing.T, store *memory.DocumentStore, userID, first, last string) {
	t.Helper()
	err := store.SetDocument(context.Background(), "users/"+userID, map[string]any{
		"firstName": first,
		"lastName":  last,
	})
	require.NoError(t, err)
}

// TestReviewService_EnrichesDisplayNames verifies each review gets its
// reviewer's resolved name via the secondary lookup.
func TestReviewService_EnrichesDisplayNames(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	seedProfile(t, store, "u1", "Ana", "Luz")
	seedProfile(t, store, "u2", "Ben", "Ito")
	svc := NewReviewService(store)

	require.NoError(t, svc.SubmitReview(ctx, "b1", "u1", 5, "great"))
	require.NoError(t, svc.SubmitReview(ctx, "b1", "u2", 3, "fine"))

	feeds, sub, err := svc.SubscribeReviews(ctx, "b1", "u1")
	require.NoError(t, err)
	defer sub.Cancel()

	feed := recvFeed(t, feeds)
	require.Len(t, feed.Reviews, 2)

	names := map[string]string{}
	for _, r := range feed.Reviews {
		names[r.UserID] = r.DisplayName
	}
	assert.Equal(t, "Ana Luz", names["u1"])
	assert.Equal(t, "Ben Ito", names["u2"])
}

// TestReviewService_LookupFailureFallsBack: for a snapshot of N reviews
// where one reviewer has no profile, the feed still has length N and
// that review carries the placeholder name.
func TestReviewService_LookupFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	seedProfile(t, store, "u1", "Ana", "Luz")
	svc := NewReviewService(store)

	require.NoError(t, svc.SubmitReview(ctx, "b1", "u1", 5, "great"))
	require.NoError(t, svc.SubmitReview(ctx, "b1", "ghost", 2, "meh"))

	feeds, sub, err := svc.SubscribeReviews(ctx, "b1", "u1")
	require.NoError(t, err)
	defer sub.Cancel()

	feed := recvFeed(t, feeds)
	require.Len(t, feed.Reviews, 2)

	names := map[string]string{}
	for _, r := range feed.Reviews {
		names[r.UserID] = r.DisplayName
	}
	assert.Equal(t, "Ana Luz", names["u1"])
	assert.Equal(t, domain.FallbackDisplayName, names["ghost"])
}

// TestReviewService_OwnReviewDetection verifies OwnReview points at the
// current user's review, and is nil when they have none.
func TestReviewService_OwnReviewDetection(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	svc := NewReviewService(store)

	require.NoError(t, svc.SubmitReview(ctx, "b1", "u1", 4, "mine"))

	feeds, sub, err := svc.SubscribeReviews(ctx, "b1", "u1")
	require.NoError(t, err)
	feed := recvFeed(t, feeds)
	require.NotNil(t, feed.OwnReview)
	assert.Equal(t, "mine", feed.OwnReview.Comment)
	sub.Cancel()

	feeds, sub, err = svc.SubscribeReviews(ctx, "b1", "someone-else")
	require.NoError(t, err)
	defer sub.Cancel()
	feed = recvFeed(t, feeds)
	assert.Nil(t, feed.OwnReview)
}

// TestReviewService_NewestFirst verifies feed order is timestamp
// descending.
func TestReviewService_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.SetNow(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})
	svc := NewReviewService(store)

	require.NoError(t, svc.SubmitReview(ctx, "b1", "early", 3, "first"))
	require.NoError(t, svc.SubmitReview(ctx, "b1", "late", 4, "second"))

	feeds, sub, err := svc.SubscribeReviews(ctx, "b1", "early")
	require.NoError(t, err)
	defer sub.Cancel()

	feed := recvFeed(t, feeds)
	require.Len(t, feed.Reviews, 2)
	assert.Equal(t, "late", feed.Reviews[0].UserID)
	assert.Equal(t, "early", feed.Reviews[1].UserID)
}

// TestReviewService_SupersededSnapshotDiscarded: given snapshots S1 then
// S2 arriving before S1's enrichment completes, only S2's enrichment is
// ever emitted.
func TestReviewService_SupersededSnapshotDiscarded(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewDocumentStore()
	gate := make(chan struct{})
	store := &gatedStore{DocumentStore: inner, gate: gate}
	svc := NewReviewService(store)

	require.NoError(t, svc.SubmitReview(ctx, "b1", "u1", 5, "first"))

	feeds, sub, err := svc.SubscribeReviews(ctx, "b1", "u1")
	require.NoError(t, err)
	defer sub.Cancel()

	// S1 (initial snapshot, one review) is now enriching, blocked on the
	// gate. Write a second review to produce S2 before S1 completes.
	require.NoError(t, svc.SubmitReview(ctx, "b1", "u2", 3, "second"))
	time.Sleep(20 * time.Millisecond) // let the loop pick up S2
	close(gate)

	feed := recvFeed(t, feeds)
	assert.Len(t, feed.Reviews, 2, "only the S2 batch is emitted")

	select {
	case extra := <-feeds:
		t.Fatalf("stale batch emitted: %d reviews", len(extra.Reviews))
	case <-time.After(100 * time.Millisecond):
	}
}

// TestReviewService_ConcurrentBatchesEmitInGenerationOrder releases two
// enrichment batches at the same instant and checks the race to the
// output channel: an older batch must never land after a newer one, so
// observed feed sizes only grow and the final feed is the newest.
func TestReviewService_ConcurrentBatchesEmitInGenerationOrder(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewDocumentStore()
	gate := make(chan struct{})
	store := &gatedStore{DocumentStore: inner, gate: gate}
	svc := NewReviewService(store)

	require.NoError(t, svc.SubmitReview(ctx, "b1", "u1", 5, "first"))

	feeds, sub, err := svc.SubscribeReviews(ctx, "b1", "u1")
	require.NoError(t, err)
	defer sub.Cancel()

	require.NoError(t, svc.SubmitReview(ctx, "b1", "u2", 3, "second"))
	time.Sleep(20 * time.Millisecond) // both batches now blocked on the gate
	close(gate)                       // release them together

	last := 0
	deadline := time.After(2 * time.Second)
	for last < 2 {
		select {
		case feed := <-feeds:
			require.GreaterOrEqual(t, len(feed.Reviews), last, "older feed emitted after newer one")
			last = len(feed.Reviews)
		case <-deadline:
			t.Fatal("newest feed never observed")
		}
	}

	select {
	case feed := <-feeds:
		assert.Len(t, feed.Reviews, 2, "stale feed landed after the newest")
	case <-time.After(100 * time.Millisecond):
	}
}

// TestReviewService_SubmitIdempotentPerUser: submitting twice with
// different content leaves exactly one stored review with the latest
// content.
func TestReviewService_SubmitIdempotentPerUser(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	svc := NewReviewService(store)

	require.NoError(t, svc.SubmitReview(ctx, "b1", "u1", 2, "early thoughts"))
	require.NoError(t, svc.SubmitReview(ctx, "b1", "u1", 5, "changed my mind"))

	feeds, sub, err := svc.SubscribeReviews(ctx, "b1", "u1")
	require.NoError(t, err)
	defer sub.Cancel()

	feed := recvFeed(t, feeds)
	require.Len(t, feed.Reviews, 1, "one review per (book, user)")
	assert.Equal(t, 5, feed.Reviews[0].Rating)
	assert.Equal(t, "changed my mind", feed.Reviews[0].Comment)
}

// TestReviewService_SubmitValidation verifies rejected submissions
// never reach the store.
func TestReviewService_SubmitValidation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	svc := NewReviewService(store)

	assert.ErrorIs(t, svc.SubmitReview(ctx, "b1", "u1", 0, "no rating"), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.SubmitReview(ctx, "b1", "u1", 3, "   "), domain.ErrInvalidInput)

	_, err := store.GetDocument(ctx, "books/b1/reviews/u1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "no remote call was made")
}

// TestReviewService_CommentTrimmedOnWrite verifies surrounding
// whitespace is stripped before the upsert.
func TestReviewService_CommentTrimmedOnWrite(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	svc := NewReviewService(store)

	require.NoError(t, svc.SubmitReview(ctx, "b1", "u1", 4, "  tidy  "))

	data, err := store.GetDocument(ctx, "books/b1/reviews/u1")
	require.NoError(t, err)
	assert.Equal(t, "tidy", data["comment"])
}
