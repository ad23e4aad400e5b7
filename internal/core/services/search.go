package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driving"
	"github.com/shelfwise/shelfwise-cli/internal/logger"
)

// Ensure SearchStream implements the interface.
var _ driving.SearchStream = (*SearchStream)(nil)

// DefaultDebounce is the quiet period after the last keystroke before a
// query fires.
const DefaultDebounce = 500 * time.Millisecond

// SearchStream debounces keystrokes into catalog queries with
// stale-response protection.
//
// One debounce timer per stream instance: every OnQueryChange resets
// it. When the timer fires, the pending query executes with a sequence
// number captured at that moment; a response is applied only while its
// number is still the latest issued. The busy flag is raised
// synchronously on every keystroke and cleared only when the latest
// request's result (or its browse fallback) is applied.
type SearchStream struct {
	catalog driven.CatalogClient
	delay   time.Duration
	limit   int

	seq  *atomic.Uint64 // latest issued sequence number
	busy *atomic.Bool

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	out    chan domain.SearchState
	flight sync.WaitGroup
}

// NewSearchStream creates a stream. A non-positive delay falls back to
// DefaultDebounce; a non-positive limit to domain.DefaultSearchLimit.
func NewSearchStream(catalog driven.CatalogClient, delay time.Duration, limit int) *SearchStream {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SearchStream{
		catalog: catalog,
		delay:   delay,
		limit:   limit,
		seq:     atomic.NewUint64(0),
		busy:    atomic.NewBool(false),
		ctx:     ctx,
		cancel:  cancel,
		out:     make(chan domain.SearchState, 8),
	}
}

// OnQueryChange records a keystroke and resets the debounce timer. The
// busy flag is set before the delay elapses so the UI can show a
// spinner immediately.
func (s *SearchStream) OnQueryChange(text string) {
	s.busy.Store(true)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = text
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// fire executes the pending query. The sequence number is captured here,
// at the moment the request leaves, not when the keystroke arrived.
func (s *SearchStream) fire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	query := strings.TrimSpace(s.pending)
	s.mu.Unlock()

	seq := s.seq.Inc()
	logger.Debug("search #%d firing: %q", seq, query)

	s.flight.Add(1)
	go func() {
		defer s.flight.Done()

		var (
			books []domain.BookRecord
			err   error
		)
		if query == "" {
			// Cleared query falls back to the default catalog listing.
			books, err = s.catalog.List(s.ctx)
		} else {
			books, err = s.catalog.Search(s.ctx, query, s.limit)
		}

		state := domain.SearchState{Query: query, Books: books, Seq: seq}
		if err != nil {
			if !errors.Is(err, domain.ErrUnavailable) {
				logger.Warn("search #%d failed: %v", seq, err)
			}
			// Reads degrade to an empty result; the marker lets the UI
			// say "catalog unavailable" instead of "no results".
			state.Books = []domain.BookRecord{}
			state.Unavailable = errors.Is(err, domain.ErrUnavailable)
		}
		s.apply(state)
	}()
}

// apply installs a response unless it has been superseded.
func (s *SearchStream) apply(state domain.SearchState) {
	if s.seq.Load() != state.Seq {
		logger.Debug("search #%d stale, discarding %d results", state.Seq, len(state.Books))
		return
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}

	s.busy.Store(false)
	select {
	case s.out <- state:
	case <-s.ctx.Done():
	}
}

// Results delivers applied search states in application order.
func (s *SearchStream) Results() <-chan domain.SearchState {
	return s.out
}

// Busy reports whether a query is pending or in flight.
func (s *SearchStream) Busy() bool {
	return s.busy.Load()
}

// Close stops the timer, discards in-flight work and closes Results.
func (s *SearchStream) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.cancel()
	s.flight.Wait()
	close(s.out)
}
