// Package blob is a thin key-value blob store abstraction (path ->
// bytes). The S3 driver is the primary backing in production; the
// filesystem driver doubles as the local fallback and dev backing, and
// the memory driver exists for tests.
package blob

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

// ErrNotExist is returned by Get when no blob lives at the key.
// It wraps os.ErrNotExist so errors.Is(err, os.ErrNotExist) also holds.
var ErrNotExist = os.ErrNotExist

// Store is the minimal surface the genetics subsystem needs from its
// backing: whole-blob reads/writes and bounded prefix listing.
type Store interface {
	// Get returns the blob contents, or ErrNotExist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes the blob, overwriting any previous contents.
	Put(ctx context.Context, key string, data []byte) error
	// List returns up to max keys with the given prefix in ascending
	// order. max <= 0 means no limit.
	List(ctx context.Context, prefix string, max int) ([]string, error)
}

// Options selects and configures a backing for Open.
type Options struct {
	// S3 bucket; when empty the filesystem backing is used directly.
	Bucket string `json:"bucket"`
	Region string `json:"region"`
	// optional custom endpoint (MinIO etc.)
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`

	// directory used by the filesystem fallback
	LocalDir string `json:"local_dir"`
}

func (o Options) localDir() string {
	if o.LocalDir == "" {
		return "./genetics_data"
	}
	return o.LocalDir
}

// Open connects to the configured S3 backing, falling back to the local
// filesystem when the bucket is unreachable. Construction never fails
// hard on an unreachable primary; only a broken local fallback is fatal.
func Open(ctx context.Context, opts Options) (Store, error) {
	if opts.Bucket != "" {
		store, err := NewS3(ctx, opts)
		if err == nil {
			return store, nil
		}
		slog.WarnContext(
			ctx, "primary blob backing unreachable, falling back to local storage",
			"bucket", opts.Bucket,
			"local_dir", opts.localDir(),
			"err", err.Error(),
		)
	}
	return NewFilesystem(opts.localDir())
}

// IsNotExist reports whether err means the blob was absent.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}
