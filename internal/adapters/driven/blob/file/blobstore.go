package file

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
	"github.com/shelfwise/shelfwise-cli/internal/logger"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore writes blobs under a base directory.
type BlobStore struct {
	baseDir string
}

// NewBlobStore creates a blob store rooted at baseDir. If baseDir is
// empty, defaults to ~/.shelfwise/blobs.
func NewBlobStore(baseDir string) (*BlobStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".shelfwise", "blobs")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}
	return &BlobStore{baseDir: baseDir}, nil
}

// Upload stores the bytes at the given storage path and returns a
// file:// URL for the written file. Paths escaping the base directory
// are rejected.
func (s *BlobStore) Upload(_ context.Context, storagePath string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty blob: %w", domain.ErrInvalidInput)
	}

	clean := filepath.Clean(filepath.FromSlash(storagePath))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("blob path %q: %w", storagePath, domain.ErrInvalidInput)
	}

	target := filepath.Join(s.baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(target), 0700); err != nil {
		return "", fmt.Errorf("creating blob subdirectory: %w", err)
	}
	if err := os.WriteFile(target, data, 0600); err != nil {
		return "", fmt.Errorf("writing blob %s: %w", storagePath, err)
	}

	logger.Debug("stored blob %s (%d bytes)", storagePath, len(data))

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(target)}
	return u.String(), nil
}
