package driven

import (
	"context"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

// CatalogClient is the remote book-catalog contract. It is stateless:
// a thin request/response wrapper over the catalog's HTTP API.
//
// List and Search fail soft on transport error: adapters return an empty
// slice together with domain.ErrUnavailable so callers can distinguish
// "no results" from "catalog unreachable" without special-casing the
// happy path. GetByID returns domain.ErrNotFound for an unknown id and
// domain.ErrUnavailable for a transport failure.
type CatalogClient interface {
	// List returns the default catalog listing (browse mode).
	List(ctx context.Context) ([]domain.BookRecord, error)

	// Search runs a free-text query, capped at maxResults when positive.
	Search(ctx context.Context, query string, maxResults int) ([]domain.BookRecord, error)

	// GetByID fetches a single book record.
	GetByID(ctx context.Context, id string) (*domain.BookRecord, error)
}
