package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/storage/object"
)

// Store implements ObjectStore on the local filesystem. Objects live under
// baseDir/bucket/key and are expected to be served at publicBase.
type Store struct {
	baseDir    string
	bucket     string
	publicBase string
}

// New creates a local store and its bucket directory.
func New(baseDir, bucket, publicBase string) (*Store, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	if publicBase == "" {
		publicBase = "/files"
	}
	if err := os.MkdirAll(filepath.Join(baseDir, bucket), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir bucket: %w", err)
	}
	return &Store{baseDir: baseDir, bucket: bucket, publicBase: publicBase}, nil
}

// Bucket returns the bucket name.
func (s *Store) Bucket() string { return s.bucket }

// Dir returns the directory that should be served at the public base.
func (s *Store) Dir() string { return s.baseDir }

// Put writes body to disk at key inside the bucket directory.
func (s *Store) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bucketDir := filepath.Join(s.baseDir, s.bucket)
	if _, err := os.Stat(bucketDir); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", object.ErrBucketNotFound, s.bucket)
	}

	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return object.ErrInvalidKey
	}

	fullPath := filepath.Join(bucketDir, clean)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, body)
	if err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if size >= 0 && written != size {
		return fmt.Errorf("short write for %s: wrote %d of %d bytes", key, written, size)
	}
	_ = contentType
	return nil
}

// PublicURL returns the URL under which the static file server exposes key.
func (s *Store) PublicURL(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", object.ErrInvalidKey
	}
	return object.JoinPublicURL(s.publicBase, s.bucket, key), nil
}

var _ object.ObjectStore = (*Store)(nil)
