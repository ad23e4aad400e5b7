package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockCatalog implements driven.CatalogClient for testing.
type mockCatalog struct {
	mu          sync.Mutex
	books       map[string]domain.BookRecord
	listing     []domain.BookRecord
	listErr     error
	searchErr   error
	searchDelay map[string]time.Duration
	getDelay    time.Duration

	searchCalls []string
	listCalls   int
}

func newMockCatalog(books ...domain.BookRecord) *mockCatalog {
	byID := make(map[string]domain.BookRecord, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	return &mockCatalog{books: byID, searchDelay: make(map[string]time.Duration)}
}

func (m *mockCatalog) List(_ context.Context) ([]domain.BookRecord, error) {
	m.mu.Lock()
	m.listCalls++
	listing, err := m.listing, m.listErr
	m.mu.Unlock()
	if err != nil {
		return []domain.BookRecord{}, err
	}
	return listing, nil
}

func (m *mockCatalog) Search(_ context.Context, query string, _ int) ([]domain.BookRecord, error) {
	m.mu.Lock()
	m.searchCalls = append(m.searchCalls, query)
	delay := m.searchDelay[query]
	err := m.searchErr
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return []domain.BookRecord{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var hits []domain.BookRecord
	for _, b := range m.books {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(query)) {
			hits = append(hits, b)
		}
	}
	return hits, nil
}

func (m *mockCatalog) GetByID(_ context.Context, id string) (*domain.BookRecord, error) {
	if m.getDelay > 0 {
		time.Sleep(m.getDelay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	return &b, nil
}

func (m *mockCatalog) searchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.searchCalls)
}

func (m *mockCatalog) lastSearch() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.searchCalls) == 0 {
		return ""
	}
	return m.searchCalls[len(m.searchCalls)-1]
}

// gatedStore wraps a DocumentStore and blocks profile lookups until the
// gate opens. Lets tests hold an enrichment batch in flight.
type gatedStore struct {
	driven.DocumentStore
	gate chan struct{}
}

func (g *gatedStore) GetDocument(ctx context.Context, path string) (map[string]any, error) {
	if strings.HasPrefix(path, "users/") {
		<-g.gate
	}
	return g.DocumentStore.GetDocument(ctx, path)
}

// mockBlobStore implements driven.BlobStore for testing.
type mockBlobStore struct {
	mu      sync.Mutex
	uploads map[string][]byte
	err     error
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{uploads: make(map[string][]byte)}
}

func (m *mockBlobStore) Upload(_ context.Context, path string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads[path] = data
	return "blob://" + path, nil
}

// mockAuthProvider implements driven.AuthProvider for testing.
type mockAuthProvider struct {
	userID      string
	signInErr   error
	registerErr error
	signedOut   bool
}

func (m *mockAuthProvider) CurrentUserID() (string, error) {
	if m.userID == "" {
		return "", domain.ErrNotSignedIn
	}
	return m.userID, nil
}

func (m *mockAuthProvider) OnAuthStateChange(func(driven.AuthState)) driven.CancelFunc {
	return func() {}
}

func (m *mockAuthProvider) SignIn(_ context.Context, _ domain.Credentials) (string, error) {
	if m.signInErr != nil {
		return "", m.signInErr
	}
	return m.userID, nil
}

func (m *mockAuthProvider) Register(_ context.Context, _ domain.Credentials) (string, error) {
	if m.registerErr != nil {
		return "", m.registerErr
	}
	return m.userID, nil
}

func (m *mockAuthProvider) SignOut(_ context.Context) error {
	m.signedOut = true
	return nil
}

// recvSet reads the next saved-set emission with a timeout.
func recvSet(t interface {
	Helper()
	Fatalf(string, ...any)
}, ch <-chan domain.SavedBookSet) domain.SavedBookSet {
	t.Helper()
	select {
	case set, ok := <-ch:
		if !ok {
			t.Fatalf("saved-set channel closed")
		}
		return set
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for saved-set emission")
	}
	return domain.SavedBookSet{}
}

// recvFeed reads the next review-feed emission with a timeout.
func recvFeed(t interface {
	Helper()
	Fatalf(string, ...any)
}, ch <-chan domain.ReviewFeed) domain.ReviewFeed {
	t.Helper()
	select {
	case feed, ok := <-ch:
		if !ok {
			t.Fatalf("review-feed channel closed")
		}
		return feed
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for review-feed emission")
	}
	return domain.ReviewFeed{}
}
