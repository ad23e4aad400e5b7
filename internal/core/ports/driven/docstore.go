package driven

import "context"

// serverTimestamp is the sentinel type behind ServerTimestamp.
type serverTimestamp struct{}

// ServerTimestamp is a sentinel value. Placing it in a document field
// makes the store assign its own write time, so timestamps stay
// monotonic per write regardless of client clocks.
var ServerTimestamp = serverTimestamp{}

// Document is one entry of a collection snapshot: the document key plus
// its decoded fields.
type Document struct {
	ID   string
	Data map[string]any
}

// OrderBy describes the ordering a collection subscription requests.
// The zero value means the store's stable insertion order.
type OrderBy struct {
	Field string
	Desc  bool
}

// CancelFunc tears down a subscription. It must be called exactly once;
// after it returns, no further snapshots are delivered.
type CancelFunc func()

// DocumentStore is the remote document-store contract.
//
// Writes are fire-and-forget from the core's perspective: consistency is
// observed only via the next subscription emission, never by inspecting
// a write's result. Every snapshot delivered on a subscription channel
// is the complete current collection, not a delta.
type DocumentStore interface {
	// GetDocument retrieves a single document's fields.
	// Returns domain.ErrNotFound when the document is absent.
	GetDocument(ctx context.Context, path string) (map[string]any, error)

	// SetDocument creates or fully replaces a document. Fields holding
	// ServerTimestamp are resolved to the store's write time.
	SetDocument(ctx context.Context, path string, data map[string]any) error

	// UpdateDocument merges the given fields into an existing document.
	// Returns domain.ErrNotFound when the document is absent.
	UpdateDocument(ctx context.Context, path string, data map[string]any) error

	// DeleteDocument removes a document. Deleting an absent document is
	// not an error.
	DeleteDocument(ctx context.Context, path string) error

	// SubscribeCollection opens a live subscription on a collection.
	// The current snapshot is delivered immediately, then one snapshot
	// per change event, in event order. The channel is closed after the
	// returned CancelFunc is called.
	SubscribeCollection(ctx context.Context, path string, orderBy OrderBy) (<-chan []Document, CancelFunc, error)
}
