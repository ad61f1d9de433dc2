// Package blobstore keeps uploaded image bytes, keyed by their generated
// filename, on local disk or in an S3 bucket.
package blobstore

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/gallery/internal/server/config"
)

// Object is an opened blob. The caller must close Body.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

// Store is implemented by LocalStore and S3Store.
//
// Put never overwrites: an existing name yields common.ErrorAlreadyExists.
// Open yields common.ErrorNotFound for unknown or invalid names.
type Store interface {
	Put(ctx context.Context, name string, body io.ReadSeeker, size int64, contentType string) error
	Open(ctx context.Context, name string) (*Object, error)
	Delete(ctx context.Context, name string) error
}

// ValidName reports whether name is a single, plain path element. Dot-names
// are refused so in-progress temp files are never served.
func ValidName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return filepath.Base(name) == name
}

// Open picks the blob backend from configuration.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg.UseS3() {
		return NewS3Store(ctx, cfg)
	}
	return NewLocalStore(cfg.UploadsDir)
}
