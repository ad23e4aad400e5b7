package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/shelfwise/shelfwise-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// subscriber is one open collection subscription.
type subscriber struct {
	ch      chan []driven.Document
	orderBy driven.OrderBy
}

// DocumentStore is a SQLite-backed implementation of
// driven.DocumentStore. The mutex covers write+notify so subscribers
// observe snapshots in mutation order.
type DocumentStore struct {
	db   *sql.DB
	path string

	mu      sync.Mutex
	subs    map[string]map[int]*subscriber
	nextSub int

	// now is swappable so tests can control server-assigned timestamps.
	now func() time.Time
}

// NewDocumentStore opens (and migrates) the store at the specified data
// directory. If dataDir is empty, defaults to ~/.shelfwise/data.
func NewDocumentStore(dataDir string) (*DocumentStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".shelfwise", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &DocumentStore{
		db:   db,
		path: dbPath,
		subs: make(map[string]map[int]*subscriber),
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection and every open subscription.
func (s *DocumentStore) Close() error {
	s.mu.Lock()
	for col, subs := range s.subs {
		for key, sub := range subs {
			delete(subs, key)
			close(sub.ch)
		}
		delete(s.subs, col)
	}
	s.mu.Unlock()
	return s.db.Close()
}

// Path returns the database file path.
func (s *DocumentStore) Path() string {
	return s.path
}

// SetNow overrides the server clock. Test hook.
func (s *DocumentStore) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// migrate runs all pending migrations.
func (s *DocumentStore) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

func splitPath(docPath string) (collection, id string) {
	return path.Dir(docPath), path.Base(docPath)
}

// GetDocument retrieves a single document's fields.
func (s *DocumentStore) GetDocument(ctx context.Context, docPath string) (map[string]any, error) {
	col, id := splitPath(docPath)

	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM documents WHERE collection = ? AND id = ?
	`, col, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document %s: %w", docPath, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying document: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("unmarshaling document %s: %w", docPath, err)
	}
	return data, nil
}

// SetDocument creates or fully replaces a document and notifies the
// collection's subscribers. ServerTimestamp fields resolve to the store
// clock at write time.
func (s *DocumentStore) SetDocument(ctx context.Context, docPath string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, id := splitPath(docPath)
	now := s.now().UTC()

	raw, err := json.Marshal(s.encodeLocked(data, now))
	if err != nil {
		return fmt.Errorf("marshalling document %s: %w", docPath, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, col, id, string(raw), now)
	if err != nil {
		return fmt.Errorf("saving document %s: %w", docPath, err)
	}

	s.notifyLocked(ctx, col)
	return nil
}

// UpdateDocument merges fields into an existing document.
func (s *DocumentStore) UpdateDocument(ctx context.Context, docPath string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, id := splitPath(docPath)

	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM documents WHERE collection = ? AND id = ?
	`, col, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return fmt.Errorf("document %s: %w", docPath, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("querying document: %w", err)
	}

	var existing map[string]any
	if err := json.Unmarshal([]byte(raw), &existing); err != nil {
		return fmt.Errorf("unmarshaling document %s: %w", docPath, err)
	}

	now := s.now().UTC()
	for k, v := range s.encodeLocked(data, now) {
		existing[k] = v
	}

	merged, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("marshalling document %s: %w", docPath, err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE documents SET data = ?, updated_at = ? WHERE collection = ? AND id = ?
	`, string(merged), now, col, id)
	if err != nil {
		return fmt.Errorf("updating document %s: %w", docPath, err)
	}

	s.notifyLocked(ctx, col)
	return nil
}

// DeleteDocument removes a document. Absent documents are a no-op.
func (s *DocumentStore) DeleteDocument(ctx context.Context, docPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, id := splitPath(docPath)

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM documents WHERE collection = ? AND id = ?
	`, col, id)
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", docPath, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil
	}

	s.notifyLocked(ctx, col)
	return nil
}

// SubscribeCollection opens a live subscription. The current snapshot
// is delivered immediately; afterwards every mutation of the collection
// delivers one complete snapshot, in mutation order.
func (s *DocumentStore) SubscribeCollection(
	ctx context.Context, colPath string, orderBy driven.OrderBy,
) (<-chan []driven.Document, driven.CancelFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.snapshotLocked(ctx, colPath, orderBy)
	if err != nil {
		return nil, nil, err
	}

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

	sub.ch <- snap

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
// collection. Called with the store lock held.
func (s *DocumentStore) notifyLocked(ctx context.Context, colPath string) {
	subs := s.subs[colPath]
	if len(subs) == 0 {
		return
	}
	for _, sub := range subs {
		snap, err := s.snapshotLocked(ctx, colPath, sub.orderBy)
		if err != nil {
			continue
		}
		enqueue(sub.ch, snap)
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
// Rowid order gives stable insertion order; the requested field sort
// runs in memory because field values live inside the JSON blob.
func (s *DocumentStore) snapshotLocked(
	ctx context.Context, colPath string, orderBy driven.OrderBy,
) ([]driven.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, data FROM documents WHERE collection = ? ORDER BY rowid
	`, colPath)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", colPath, err)
	}
	defer rows.Close()

	snap := []driven.Document{}
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		var data map[string]any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, fmt.Errorf("unmarshaling document %s: %w", id, err)
		}
		snap = append(snap, driven.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collection %s: %w", colPath, err)
	}

	if orderBy.Field != "" {
		sort.SliceStable(snap, func(i, j int) bool {
			if orderBy.Desc {
				return fieldLess(snap[j].Data[orderBy.Field], snap[i].Data[orderBy.Field])
			}
			return fieldLess(snap[i].Data[orderBy.Field], snap[j].Data[orderBy.Field])
		})
	}
	return snap, nil
}

// encodeLocked resolves ServerTimestamp sentinels and converts time
// values to RFC 3339 strings so the document survives JSON encoding.
func (s *DocumentStore) encodeLocked(data map[string]any, now time.Time) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		switch tv := v.(type) {
		case time.Time:
			out[k] = tv.UTC().Format(time.RFC3339Nano)
		default:
			if v == driven.ServerTimestamp {
				out[k] = now.Format(time.RFC3339Nano)
			} else {
				out[k] = v
			}
		}
	}
	return out
}

// fieldLess orders two field values. Timestamps come back from JSON as
// RFC 3339 strings, which compare correctly as strings.
func fieldLess(a, b any) bool {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	}
	return false
}
