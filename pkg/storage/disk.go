// Package storage abstracts where uploaded product images live.
//
// Two drivers are available:
//   - "local" — local filesystem, served back under the upload URL prefix
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
package storage

import "io"

// Disk is the upload storage driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
