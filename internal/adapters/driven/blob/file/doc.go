// Package file implements the BlobStore port on the local filesystem.
// Objects land under a base directory mirroring their storage path and
// Upload returns a file:// URL pointing at the written file.
package file
