package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
	"github.com/shelfwise/shelfwise-cli/internal/logger"
)

const (
	// DefaultBaseURL is the public catalog endpoint.
	DefaultBaseURL = "https://reactnd-books-api.udacity.com"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// Ensure Client implements the interface.
var _ driven.CatalogClient = (*Client)(nil)

// Client is a stateless wrapper over the catalog HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a catalog client. The token is sent as a static
// bearer credential on every request; the catalog accepts any stable
// token and uses it only to namespace per-client state.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(context.Background(), ts)
	hc.Timeout = DefaultTimeout
	return &Client{baseURL: baseURL, http: hc}
}

// bookPayload is the catalog's book representation on the wire.
type bookPayload struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	Description   string   `json:"description"`
	AverageRating float64  `json:"averageRating"`
	RatingsCount  int      `json:"ratingsCount"`
	ImageLinks    struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

func (p bookPayload) toDomain() domain.BookRecord {
	return domain.BookRecord{
		ID:            p.ID,
		Title:         p.Title,
		Authors:       p.Authors,
		Publisher:     p.Publisher,
		Description:   p.Description,
		ThumbnailURL:  p.ImageLinks.Thumbnail,
		AverageRating: p.AverageRating,
		RatingsCount:  p.RatingsCount,
	}
}

// List returns the default catalog listing. Transport failures degrade
// to an empty result carrying domain.ErrUnavailable.
func (c *Client) List(ctx context.Context) ([]domain.BookRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/books", nil)
	if err != nil {
		return []domain.BookRecord{}, fmt.Errorf("build request: %w", err)
	}
	return c.bookList(req)
}

// Search runs a free-text query. A non-positive maxResults leaves the
// cap to the server.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]domain.BookRecord, error) {
	body := map[string]any{"query": query}
	if maxResults > 0 {
		body["maxResults"] = maxResults
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return []domain.BookRecord{}, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return []domain.BookRecord{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.bookList(req)
}

// GetByID fetches one record. Unknown ids map to domain.ErrNotFound,
// transport failures to domain.ErrUnavailable.
func (c *Client) GetByID(ctx context.Context, id string) (*domain.BookRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/books/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("catalog get %s: %v", id, err)
		return nil, fmt.Errorf("catalog get %s: %w", id, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Warn("catalog get %s: status %d", id, resp.StatusCode)
		return nil, fmt.Errorf("catalog get %s: status %d: %w", id, resp.StatusCode, domain.ErrUnavailable)
	}

	var out struct {
		Book *bookPayload `json:"book"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode book %s: %w", id, domain.ErrUnavailable)
	}
	if out.Book == nil || out.Book.ID == "" {
		// The API answers 200 with an error body for unknown ids.
		return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	book := out.Book.toDomain()
	return &book, nil
}

// bookList runs a request whose response carries a "books" array.
func (c *Client) bookList(req *http.Request) ([]domain.BookRecord, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("catalog %s %s: %v", req.Method, req.URL.Path, err)
		return []domain.BookRecord{}, fmt.Errorf("catalog request: %w", domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("catalog %s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
		return []domain.BookRecord{}, fmt.Errorf("catalog request: status %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}

	// The search endpoint answers 200 with {"books": {"error": ...}}
	// when nothing matches, so the array is decoded leniently.
	var out struct {
		Books json.RawMessage `json:"books"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return []domain.BookRecord{}, fmt.Errorf("decode books: %w", domain.ErrUnavailable)
	}

	var payloads []bookPayload
	if err := json.Unmarshal(out.Books, &payloads); err != nil {
		return []domain.BookRecord{}, nil
	}

	books := make([]domain.BookRecord, 0, len(payloads))
	for _, p := range payloads {
		books = append(books, p.toDomain())
	}
	return books, nil
}
