package domain

// DefaultSearchLimit caps the number of results a debounced search
// requests from the catalog.
const DefaultSearchLimit = 20

// SearchState is one applied emission of the debounced search stream.
// Seq is the request sequence number captured when the request fired;
// the stream discards any response whose Seq is not the latest issued,
// so a slow early response can never clobber a later, faster one.
type SearchState struct {
	// Query is the text the request was fired with. Empty means the
	// default catalog listing (browse mode).
	Query string

	// Books is the applied result list.
	Books []BookRecord

	// Seq is the monotonically increasing request sequence number.
	Seq uint64

	// Unavailable marks a result that is empty because the catalog could
	// not be reached, as opposed to a genuine empty result.
	Unavailable bool
}

// Browse reports whether this state is the no-query default listing.
func (s SearchState) Browse() bool {
	return s.Query == ""
}
