package object

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrNoPublicURL is returned when a store cannot build public links.
	ErrNoPublicURL = errors.New("public url not configured")
	// ErrInvalidKey is returned for keys that escape the bucket.
	ErrInvalidKey = errors.New("invalid storage key")
)

// ObjectStore saves binary objects under caller-chosen keys and exposes them by public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PublicURL(key string) (string, error)
	Bucket() string
}
