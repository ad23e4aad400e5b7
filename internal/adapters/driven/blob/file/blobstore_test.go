package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
)

func TestBlobStore_Upload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewBlobStore(dir)
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "profiles/u1.jpg", []byte{0xFF, 0xD8})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"), url)

	written, err := os.ReadFile(filepath.Join(dir, "profiles", "u1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, written)
}

func TestBlobStore_UploadOverwrites(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := store.Upload(ctx, "profiles/u1.jpg", []byte{0x01})
	require.NoError(t, err)
	second, err := store.Upload(ctx, "profiles/u1.jpg", []byte{0x02})
	require.NoError(t, err)
	assert.Equal(t, first, second, "same path yields same URL")
}

func TestBlobStore_UploadRejectsBadInput(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		data []byte
	}{
		{name: "empty data", path: "profiles/u1.jpg", data: nil},
		{name: "path escape", path: "../outside.jpg", data: []byte{0x01}},
		{name: "absolute path", path: "/etc/passwd", data: []byte{0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Upload(ctx, tt.path, tt.data)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
