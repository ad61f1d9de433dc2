// Package token persists the CLI session token between invocations.
package token

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/filex"
)

// Repository stores at most one token.
type Repository interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileRepository keeps the token in a single owner-only file.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Load returns common.ErrorNotFound when no token is stored.
func (r *FileRepository) Load() (string, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}

	tok := strings.TrimSpace(string(data))
	if tok == "" {
		return "", common.ErrorNotFound
	}
	return tok, nil
}

func (r *FileRepository) Save(token string) error {
	if _, err := filex.EnsureDir(filepath.Dir(r.path)); err != nil {
		return err
	}
	return filex.WriteFileAtomic(r.path, []byte(token+"\n"), 0o600)
}

// Clear removes the token; a missing file is not an error.
func (r *FileRepository) Clear() error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
