// Package jsonfile stores a collection of records as one pretty-printed JSON
// array in a single file. Every mutation rewrites the whole file atomically
// under an in-process mutex and an advisory file lock, so concurrent writers
// no longer lose each other's updates.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/gallery/internal/filex"
)

const filePerm = 0o640

// Collection is a file-backed []T.
type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

// Open returns a collection stored at path, creating the file with an empty
// array if it does not exist yet.
func Open[T any](path string) (*Collection[T], error) {
	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	c := &Collection[T]{path: path}

	err := c.withFileLock(func() error {
		if _, err := os.Stat(path); err == nil {
			return nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		return filex.WriteFileAtomic(path, []byte("[]"), filePerm)
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Collection[T]) Path() string { return c.path }

// All returns a snapshot of every record, in file order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var items []T
	err := c.withFileLock(func() error {
		var err error
		items, err = c.read()
		return err
	})
	return items, err
}

// Update runs fn against the current records and persists what it returns.
// If fn fails nothing is written and its error is returned unchanged.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.withFileLock(func() error {
		items, err := c.read()
		if err != nil {
			return err
		}

		items, err = fn(items)
		if err != nil {
			return err
		}

		return c.write(items)
	})
}

func (c *Collection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	items := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	return filex.WriteFileAtomic(c.path, data, filePerm)
}

func (c *Collection[T]) withFileLock(fn func() error) error {
	unlock, err := lockFile(c.path + ".lock")
	if err != nil {
		return fmt.Errorf("lock %s: %w", c.path, err)
	}
	defer unlock()

	return fn()
}
