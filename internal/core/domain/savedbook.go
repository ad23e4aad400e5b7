package domain

import "time"

// SavedBook is one member of a user's saved-book collection. The remote
// document carries a small summary so the list screen can render without
// a catalog round trip; AddedAt is assigned by the store on creation.
type SavedBook struct {
	BookID   string
	Title    string
	Author   string
	ImageURL string
	AddedAt  time.Time
}

// SavedBookSet is the membership set of one user's saved books.
//
// It is a pure projection of the remote collection: every subscription
// emission carries a complete replacement set, never a delta, and the
// local copy is never a source of truth. Order is the remote collection's
// declared order (most recently added first).
type SavedBookSet struct {
	ordered []SavedBook
	members map[string]SavedBook
}

// NewSavedBookSet builds a set from an ordered snapshot of the remote
// collection. The slice order is preserved.
func NewSavedBookSet(books []SavedBook) SavedBookSet {
	members := make(map[string]SavedBook, len(books))
	ordered := make([]SavedBook, 0, len(books))
	for _, b := range books {
		if _, dup := members[b.BookID]; dup {
			continue
		}
		members[b.BookID] = b
		ordered = append(ordered, b)
	}
	return SavedBookSet{ordered: ordered, members: members}
}

// Has reports whether bookID is a member of the set.
func (s SavedBookSet) Has(bookID string) bool {
	_, ok := s.members[bookID]
	return ok
}

// IDs returns the member identifiers in the set's declared order.
func (s SavedBookSet) IDs() []string {
	ids := make([]string, len(s.ordered))
	for i, b := range s.ordered {
		ids[i] = b.BookID
	}
	return ids
}

// Books returns the members in the set's declared order.
func (s SavedBookSet) Books() []SavedBook {
	out := make([]SavedBook, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Len returns the number of members.
func (s SavedBookSet) Len() int {
	return len(s.ordered)
}
