package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driving"
	"github.com/shelfwise/shelfwise-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// savedOrder is the remote collection's declared order: most recently
// added first.
var savedOrder = driven.OrderBy{Field: "addedAt", Desc: true}

// LibraryService keeps a user's saved-book set in sync with its remote
// collection and materializes it against the catalog.
type LibraryService struct {
	store   driven.DocumentStore
	catalog driven.CatalogClient
}

// NewLibraryService creates a library service. Both collaborators are
// injected explicitly; the service holds no ambient state.
func NewLibraryService(store driven.DocumentStore, catalog driven.CatalogClient) *LibraryService {
	return &LibraryService{store: store, catalog: catalog}
}

// SubscribeSaved opens the live membership subscription. Every remote
// change event yields one SavedBookSet holding the complete current
// membership; the local set is a pure projection and never drifts from
// the latest observed snapshot.
func (s *LibraryService) SubscribeSaved(
	ctx context.Context, userID string,
) (<-chan domain.SavedBookSet, driving.Subscription, error) {
	snaps, cancel, err := s.store.SubscribeCollection(ctx, savedBooksPath(userID), savedOrder)
	if err != nil {
		return nil, nil, fmt.Errorf("subscribe saved books: %w", err)
	}

	out := make(chan domain.SavedBookSet)
	done := make(chan struct{})
	handle := newHandle(func() {
		cancel()
		close(done)
	})
	logger.Debug("saved-set subscription %s opened for user %s", handle.ID(), userID)

	go func() {
		defer close(out)
		for snap := range snaps {
			books := make([]domain.SavedBook, 0, len(snap))
			for _, doc := range snap {
				books = append(books, savedBookFromDoc(doc))
			}
			set := domain.NewSavedBookSet(books)
			select {
			case out <- set:
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, handle, nil
}

// SubscribeMyBooks layers the materializer on top of the saved-set
// subscription: every membership change re-resolves the full set via
// the catalog, emitting ordered book records. Snapshots are processed
// sequentially so emissions preserve remote event order.
func (s *LibraryService) SubscribeMyBooks(
	ctx context.Context, userID string,
) (<-chan []domain.BookRecord, driving.Subscription, error) {
	sets, inner, err := s.SubscribeSaved(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan []domain.BookRecord)
	done := make(chan struct{})
	handle := newHandle(func() {
		inner.Cancel()
		close(done)
	})

	go func() {
		defer close(out)
		for set := range sets {
			books, err := s.Materialize(ctx, set)
			if err != nil {
				// Only context cancellation reaches here; per-id
				// failures are dropped inside Materialize.
				return
			}
			select {
			case out <- books:
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, handle, nil
}

// Materialize resolves every member id to a full catalog record. The
// lookups run concurrently, but the result preserves the set's declared
// order, not the order lookups complete in. An id the catalog no longer
// knows is dropped from the result rather than failing the whole set.
// Personal lists are small, so a full re-resolve per change is fine.
func (s *LibraryService) Materialize(
	ctx context.Context, set domain.SavedBookSet,
) ([]domain.BookRecord, error) {
	ids := set.IDs()
	if len(ids) == 0 {
		return []domain.BookRecord{}, nil
	}

	resolved := make([]*domain.BookRecord, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			book, err := s.catalog.GetByID(gctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnavailable) {
					logger.Warn("materialize: dropping %s: %v", id, err)
					return nil
				}
				return err
			}
			resolved[i] = book
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("materialize saved books: %w", err)
	}

	books := make([]domain.BookRecord, 0, len(ids))
	for _, b := range resolved {
		if b != nil {
			books = append(books, *b)
		}
	}
	return books, nil
}

// ToggleSaved flips a book's membership: present means delete, absent
// means create with a server-assigned timestamp. The caller must not
// mutate any local copy of the set: the next subscription emission is
// the sole source of truth. On remote failure the error is surfaced,
// the set is left unchanged, and there is no retry.
func (s *LibraryService) ToggleSaved(ctx context.Context, userID string, book domain.BookRecord) error {
	docPath := savedBookPath(userID, book.ID)

	_, err := s.store.GetDocument(ctx, docPath)
	switch {
	case err == nil:
		logger.Debug("toggle: removing %s for user %s", book.ID, userID)
		if err := s.store.DeleteDocument(ctx, docPath); err != nil {
			return fmt.Errorf("remove saved book: %w", err)
		}
		return nil
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("toggle: saving %s for user %s", book.ID, userID)
		if err := s.store.SetDocument(ctx, docPath, savedBookToDoc(book)); err != nil {
			return fmt.Errorf("save book: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("check saved book: %w", err)
	}
}
