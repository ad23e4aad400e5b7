package driven

import "context"

// BlobStore is the remote blob-storage contract used for profile
// pictures. Upload stores the bytes at the given path and returns a
// retrievable URL for the stored object.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}
