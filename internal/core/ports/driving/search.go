package driving

import "github.com/shelfwise/shelfwise-cli/internal/core/domain"

// SearchStream converts a rapid sequence of keystrokes into a throttled
// sequence of catalog queries.
//
// Every OnQueryChange call resets a single debounce timer; only after
// the delay elapses with no further calls does the pending query fire.
// Results are applied in issue order: each fired request captures a
// sequence number, and a response that is not the latest issued is
// discarded, so a slow early response never clobbers a later one.
type SearchStream interface {
	// OnQueryChange records a keystroke. The busy flag is set
	// synchronously, before the debounce delay elapses.
	OnQueryChange(text string)

	// Results delivers applied search states, in application order.
	Results() <-chan domain.SearchState

	// Busy reports whether a query is pending or in flight. Cleared
	// only when the latest request's result (or its browse fallback)
	// has been applied.
	Busy() bool

	// Close tears the stream down and closes Results.
	Close()
}
