package memory

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// collection holds one collection's documents in insertion order.
type collection struct {
	order []string
	docs  map[string]map[string]any
}

// subscriber is one open collection subscription.
type subscriber struct {
	ch      chan []driven.Document
	orderBy driven.OrderBy
}

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Every mutation delivers a complete ordered snapshot to each open
// subscription on the affected collection, in mutation order.
type DocumentStore struct {
	mu          sync.Mutex
	collections map[string]*collection
	subs        map[string]map[int]*subscriber
	nextSub     int

	// now is swappable so tests can control server-assigned timestamps.
	now func() time.Time
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]*collection),
		subs:        make(map[string]map[int]*subscriber),
		now:         time.Now,
	}
}

// SetNow overrides the server clock. Test hook.
func (s *DocumentStore) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func splitPath(docPath string) (collectionPath, id string) {
	return path.Dir(docPath), path.Base(docPath)
}

// GetDocument retrieves a single document's fields.
func (s *DocumentStore) GetDocument(_ context.Context, docPath string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, id := splitPath(docPath)
	c, ok := s.collections[col]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", docPath, domain.ErrNotFound)
	}
	data, ok := c.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", docPath, domain.ErrNotFound)
	}
	return cloneData(data), nil
}

// SetDocument creates or fully replaces a document and notifies the
// collection's subscribers. ServerTimestamp fields resolve to the store
// clock at write time.
func (s *DocumentStore) SetDocument(_ context.Context, docPath string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, id := splitPath(docPath)
	c, ok := s.collections[col]
	if !ok {
		c = &collection{docs: make(map[string]map[string]any)}
		s.collections[col] = c
	}
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = s.resolveTimestamps(cloneData(data))
	s.notifyLocked(col)
	return nil
}

// UpdateDocument merges fields into an existing document.
func (s *DocumentStore) UpdateDocument(_ context.Context, docPath string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, id := splitPath(docPath)
	c, ok := s.collections[col]
	if !ok {
		return fmt.Errorf("document %s: %w", docPath, domain.ErrNotFound)
	}
	existing, ok := c.docs[id]
	if !ok {
		return fmt.Errorf("document %s: %w", docPath, domain.ErrNotFound)
	}
	for k, v := range s.resolveTimestamps(cloneData(data)) {
		existing[k] = v
	}
	s.notifyLocked(col)
	return nil
}

// DeleteDocument removes a document. Absent documents are a no-op.
func (s *DocumentStore) DeleteDocument(_ context.Context, docPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, id := splitPath(docPath)
	c, ok := s.collections[col]
	if !ok {
		return nil
	}
	if _, exists := c.docs[id]; !exists {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	s.notifyLocked(col)
	return nil
}

// SubscribeCollection opens a live subscription. The current snapshot
// is delivered immediately; afterwards every mutation of the collection
// delivers one complete snapshot, in mutation order.
func (s *DocumentStore) SubscribeCollection(
	_ context.Context, colPath string, orderBy driven.OrderBy,
) (<-chan []driven.Document, driven.CancelFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &subscriber{
		ch:      make(chan []driven.Document, 64),
		orderBy: orderBy,
	}
	if s.subs[colPath] == nil {
		s.subs[colPath] = make(map[int]*subscriber)
	}
	key := s.nextSub
	s.nextSub++
	s.subs[colPath][key] = sub

	// Initial snapshot.
	sub.ch <- s.snapshotLocked(colPath, orderBy)

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if cur, ok := s.subs[colPath][key]; ok {
			delete(s.subs[colPath], key)
			close(cur.ch)
		}
	}
	return sub.ch, cancel, nil
}

// notifyLocked fans the current snapshot out to every subscriber of the
// collection. Called with the store lock held so snapshots are sent in
// mutation order.
func (s *DocumentStore) notifyLocked(colPath string) {
	for _, sub := range s.subs[colPath] {
		enqueue(sub.ch, s.snapshotLocked(colPath, sub.orderBy))
	}
}

// enqueue delivers without blocking: when a subscriber has stopped
// draining, the oldest buffered snapshot is dropped to make room. Every
// snapshot is the complete collection, so the newest one supersedes
// anything dropped, and a stalled consumer can never block writers.
func enqueue(ch chan []driven.Document, snap []driven.Document) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// snapshotLocked builds the complete ordered snapshot of a collection.
func (s *DocumentStore) snapshotLocked(colPath string, orderBy driven.OrderBy) []driven.Document {
	c, ok := s.collections[colPath]
	if !ok {
		return []driven.Document{}
	}

	snap := make([]driven.Document, 0, len(c.order))
	for _, id := range c.order {
		snap = append(snap, driven.Document{ID: id, Data: cloneData(c.docs[id])})
	}
	if orderBy.Field != "" {
		// Stable sort keeps insertion order for ties.
		sort.SliceStable(snap, func(i, j int) bool {
			less := fieldLess(snap[i].Data[orderBy.Field], snap[j].Data[orderBy.Field])
			if orderBy.Desc {
				return fieldLess(snap[j].Data[orderBy.Field], snap[i].Data[orderBy.Field])
			}
			return less
		})
	}
	return snap
}

// resolveTimestamps replaces ServerTimestamp sentinels with the store
// clock. Called with the lock held.
func (s *DocumentStore) resolveTimestamps(data map[string]any) map[string]any {
	for k, v := range data {
		if v == driven.ServerTimestamp {
			data[k] = s.now()
		}
	}
	return data
}

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

// fieldLess orders two field values: times before strings before
// numbers is irrelevant here since a collection orders on one field of
// one type; mixed types fall back to not-less.
func fieldLess(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Before(bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	case int:
		if bv, ok := b.(int); ok {
			return av < bv
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return av < bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	}
	return false
}
