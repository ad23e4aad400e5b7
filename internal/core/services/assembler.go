package services

import (
	"sync"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

// AssembleRows joins a book list with the saved-set membership flag.
// Pure function of its two inputs; the caller re-runs it whenever either
// the displayed list or the latest saved-set emission changes.
func AssembleRows(books []domain.BookRecord, saved domain.SavedBookSet) []domain.BookRow {
	rows := make([]domain.BookRow, len(books))
	for i, b := range books {
		rows[i] = domain.BookRow{Book: b, Saved: saved.Has(b.ID)}
	}
	return rows
}

// RowJoiner holds the two latest inputs of the assembler for consumers
// that receive them on independent streams (search results vs saved-set
// emissions, which carry no cross-stream ordering guarantee). Each
// setter replaces its input wholesale and returns the recomputed rows.
type RowJoiner struct {
	mu    sync.Mutex
	books []domain.BookRecord
	saved domain.SavedBookSet
}

// NewRowJoiner creates an empty joiner.
func NewRowJoiner() *RowJoiner {
	return &RowJoiner{}
}

// SetBooks replaces the displayed book list.
func (j *RowJoiner) SetBooks(books []domain.BookRecord) []domain.BookRow {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.books = books
	return AssembleRows(j.books, j.saved)
}

// SetSaved replaces the saved-set projection.
func (j *RowJoiner) SetSaved(saved domain.SavedBookSet) []domain.BookRow {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.saved = saved
	return AssembleRows(j.books, j.saved)
}

// Rows recomputes from the latest inputs.
func (j *RowJoiner) Rows() []domain.BookRow {
	j.mu.Lock()
	defer j.mu.Unlock()
	return AssembleRows(j.books, j.saved)
}
