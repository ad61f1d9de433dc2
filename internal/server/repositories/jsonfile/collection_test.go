package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func openTemp(t *testing.T) *Collection[item] {
	t.Helper()
	c, err := Open[item](filepath.Join(t.TempDir(), "nested", "items.json"))
	require.NoError(t, err)
	return c
}

func TestOpen_CreatesEmptyArray(t *testing.T) {
	c := openTemp(t)

	b, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	items, err := c.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestOpen_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"kept","n":1}]`), 0o600))

	c, err := Open[item](path)
	require.NoError(t, err)

	items, err := c.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "kept", N: 1}}, items)
}

func TestUpdate_PersistsPrettyPrinted(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	err := c.Update(ctx, func(items []item) ([]item, error) {
		return append(items, item{Name: "a", N: 1}), nil
	})
	require.NoError(t, err)

	b, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"name\": \"a\",\n    \"n\": 1\n  }\n]", string(b))
}

func TestUpdate_ErrorLeavesFileUntouched(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()
	boom := errors.New("boom")

	require.NoError(t, c.Update(ctx, func(items []item) ([]item, error) {
		return append(items, item{Name: "a"}), nil
	}))

	err := c.Update(ctx, func(items []item) ([]item, error) {
		return append(items, item{Name: "b"}), boom
	})
	assert.ErrorIs(t, err, boom)

	items, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "a"}}, items)
}

func TestUpdate_ConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()

	const writers = 32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := c.Update(ctx, func(items []item) ([]item, error) {
				return append(items, item{Name: fmt.Sprintf("w%d", i), N: i}), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	items, err := c.All(ctx)
	require.NoError(t, err)
	assert.Len(t, items, writers)
}

func TestAll_CorruptFile(t *testing.T) {
	c := openTemp(t)
	require.NoError(t, os.WriteFile(c.Path(), []byte("{not json"), 0o600))

	_, err := c.All(context.Background())
	assert.Error(t, err)
}

func TestAll_EmptyFileIsEmptyCollection(t *testing.T) {
	c := openTemp(t)
	require.NoError(t, os.WriteFile(c.Path(), nil, 0o600))

	items, err := c.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCancelledContext(t *testing.T) {
	c := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.All(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	err = c.Update(ctx, func(items []item) ([]item, error) { return items, nil })
	assert.ErrorIs(t, err, context.Canceled)
}
