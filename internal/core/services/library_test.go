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

// TestLibraryService_MembershipTracksRemote verifies the live set is an
// exact projection of the remote collection: every emission carries the
// complete current document-id set, no drift, no stale ids.
func TestLibraryService_MembershipTracksRemote(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	svc := NewLibraryService(store, newMockCatalog())

	sets, sub, err := svc.SubscribeSaved(ctx, "u1")
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Equal(t, 0, recvSet(t, sets).Len(), "initial snapshot is empty")

	require.NoError(t, store.SetDocument(ctx, "books_user/u1/mybooks/b1", map[string]any{"title": "One"}))
	set := recvSet(t, sets)
	assert.Equal(t, []string{"b1"}, set.IDs())

	require.NoError(t, store.SetDocument(ctx, "books_user/u1/mybooks/b2", map[string]any{"title": "Two"}))
	set = recvSet(t, sets)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has("b1"))
	assert.True(t, set.Has("b2"))

	require.NoError(t, store.DeleteDocument(ctx, "books_user/u1/mybooks/b1"))
	set = recvSet(t, sets)
	assert.Equal(t, []string{"b2"}, set.IDs())
}

// TestLibraryService_ToggleSaved verifies toggle semantics: absent
// creates with a server timestamp, present deletes, and local state is
// only ever updated via the next emission.
func TestLibraryService_ToggleSaved(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	svc := NewLibraryService(store, newMockCatalog())
	book := domain.BookRecord{ID: "b1", Title: "One", Authors: []string{"A"}}

	sets, sub, err := svc.SubscribeSaved(ctx, "u1")
	require.NoError(t, err)
	defer sub.Cancel()
	recvSet(t, sets) // initial

	require.NoError(t, svc.ToggleSaved(ctx, "u1", book))
	set := recvSet(t, sets)
	require.True(t, set.Has("b1"))
	assert.False(t, set.Books()[0].AddedAt.IsZero(), "server assigned the timestamp")

	require.NoError(t, svc.ToggleSaved(ctx, "u1", book))
	set = recvSet(t, sets)
	assert.False(t, set.Has("b1"))
	assert.Equal(t, 0, set.Len())
}

// TestLibraryService_SavedOrderMostRecentFirst verifies the set's
// declared order follows addedAt descending.
func TestLibraryService_SavedOrderMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.SetNow(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})
	svc := NewLibraryService(store, newMockCatalog())

	require.NoError(t, svc.ToggleSaved(ctx, "u1", domain.BookRecord{ID: "b1"}))
	require.NoError(t, svc.ToggleSaved(ctx, "u1", domain.BookRecord{ID: "b2"}))

	sets, sub, err := svc.SubscribeSaved(ctx, "u1")
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Equal(t, []string{"b2", "b1"}, recvSet(t, sets).IDs())
}

// TestLibraryService_MaterializeDropsNotFound: for a saved set
// {"id1","id2"} where id1 resolves and id2 is unknown upstream, the
// result holds exactly id1, in the set's declared order.
func TestLibraryService_MaterializeDropsNotFound(t *testing.T) {
	ctx := context.Background()
	catalog := newMockCatalog(domain.BookRecord{ID: "id1", Title: "Known"})
	svc := NewLibraryService(memory.NewDocumentStore(), catalog)

	set := domain.NewSavedBookSet([]domain.SavedBook{
		{BookID: "id1"},
		{BookID: "id2"},
	})

	books, err := svc.Materialize(ctx, set)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "id1", books[0].ID)
}

// TestLibraryService_MaterializePreservesSetOrder verifies results come
// back in the saved set's order even when lookups complete out of order.
func TestLibraryService_MaterializePreservesSetOrder(t *testing.T) {
	ctx := context.Background()
	catalog := newMockCatalog(
		domain.BookRecord{ID: "a", Title: "A"},
		domain.BookRecord{ID: "b", Title: "B"},
		domain.BookRecord{ID: "c", Title: "C"},
	)
	catalog.getDelay = 5 * time.Millisecond
	svc := NewLibraryService(memory.NewDocumentStore(), catalog)

	set := domain.NewSavedBookSet([]domain.SavedBook{
		{BookID: "c"}, {BookID: "a"}, {BookID: "b"},
	})

	books, err := svc.Materialize(ctx, set)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "c", books[0].ID)
	assert.Equal(t, "a", books[1].ID)
	assert.Equal(t, "b", books[2].ID)
}

func TestLibraryService_MaterializeEmptySet(t *testing.T) {
	svc := NewLibraryService(memory.NewDocumentStore(), newMockCatalog())
	books, err := svc.Materialize(context.Background(), domain.NewSavedBookSet(nil))
	require.NoError(t, err)
	assert.Empty(t, books)
}

// TestLibraryService_SubscribeMyBooks verifies the materializer re-runs
// in full on every membership change.
func TestLibraryService_SubscribeMyBooks(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	catalog := newMockCatalog(
		domain.BookRecord{ID: "b1", Title: "One"},
		domain.BookRecord{ID: "b2", Title: "Two"},
	)
	svc := NewLibraryService(store, catalog)

	lists, sub, err := svc.SubscribeMyBooks(ctx, "u1")
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Empty(t, <-lists, "initial list is empty")

	require.NoError(t, svc.ToggleSaved(ctx, "u1", domain.BookRecord{ID: "b1", Title: "One"}))
	books := <-lists
	require.Len(t, books, 1)
	assert.Equal(t, "One", books[0].Title)

	require.NoError(t, svc.ToggleSaved(ctx, "u1", domain.BookRecord{ID: "b2", Title: "Two"}))
	books = <-lists
	require.Len(t, books, 2)
}

// TestLibraryService_CancelStopsEmissions verifies teardown: after
// Cancel returns no further emissions occur, and Cancel is idempotent.
func TestLibraryService_CancelStopsEmissions(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	svc := NewLibraryService(store, newMockCatalog())

	sets, sub, err := svc.SubscribeSaved(ctx, "u1")
	require.NoError(t, err)
	recvSet(t, sets)

	sub.Cancel()
	sub.Cancel() // second cancel is a no-op

	require.NoError(t, store.SetDocument(ctx, "books_user/u1/mybooks/b9", map[string]any{}))

	select {
	case _, open := <-sets:
		assert.False(t, open, "channel closes after cancel")
	case <-time.After(time.Second):
		t.Fatal("channel neither closed nor drained")
	}
}
