package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/filex"
)

const blobPerm = 0o640

// LocalStore keeps blobs as files in a single directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("uploads dir %s: %w", dir, err)
	}
	return &LocalStore{dir: abs}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

// Put streams body into a temp file, fsyncs it and hard-links it under name.
// Linking fails if name already exists, so a blob is never clobbered.
func (s *LocalStore) Put(ctx context.Context, name string, body io.ReadSeeker, _ int64, _ string) error {
	if !ValidName(name) {
		return fmt.Errorf("blob name %q: %w", name, common.ErrorValidation)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return fmt.Errorf("write blob: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("fsync blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close blob: %w", err)
	}
	if err := os.Chmod(tmp, blobPerm); err != nil {
		return fmt.Errorf("chmod blob: %w", err)
	}

	if err := os.Link(tmp, filepath.Join(s.dir, name)); err != nil {
		if errors.Is(err, os.ErrExist) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("publish blob %s: %w", name, err)
	}
	return nil
}

func (s *LocalStore) Open(ctx context.Context, name string) (*Object, error) {
	if !ValidName(name) {
		return nil, common.ErrorNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("open blob %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat blob %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, common.ErrorNotFound
	}

	return &Object{
		Body:        f,
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(name)),
		ModTime:     info.ModTime(),
	}, nil
}

// Delete removes the blob. A missing blob is not an error.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	if !ValidName(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete blob %s: %w", name, err)
	}
	return nil
}
