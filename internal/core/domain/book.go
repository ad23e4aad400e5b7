package domain

import "strings"

// BookRecord represents a book as returned by the remote catalog.
// Records are immutable once fetched: the catalog service owns them and
// assigns their identifiers; Shelfwise only caches them for the lifetime
// of a screen.
type BookRecord struct {
	// ID is the stable identifier assigned by the catalog service.
	ID string

	// Title is the human-readable title.
	Title string

	// Authors is the ordered list of author names.
	Authors []string

	// Publisher is the publishing house, if known.
	Publisher string

	// Description is the catalog blurb. Optional.
	Description string

	// ThumbnailURL points at the cover image. Optional.
	ThumbnailURL string

	// AverageRating is the catalog's mean rating, 0-5.
	AverageRating float64

	// RatingsCount is the number of catalog ratings. Never negative.
	RatingsCount int
}

// AuthorLine returns the authors joined for display.
func (b BookRecord) AuthorLine() string {
	return strings.Join(b.Authors, ", ")
}

// BookRow is a renderable catalog row: a book joined with whether the
// current user has it in their saved set. Produced by the view-model
// assembler; the presentation layer renders it as-is.
type BookRow struct {
	Book  BookRecord
	Saved bool
}
