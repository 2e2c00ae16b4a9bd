package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]func() Provider {
	dir := t.TempDir()
	return map[string]func() Provider{
		"json":   func() Provider { return New(filepath.Join(dir, "store.json")) },
		"sqlite": func() Provider { return New(filepath.Join(dir, "store.db")) },
	}
}

func TestNewPicksBackendByExtension(t *testing.T) {
	assert.IsType(t, &JSONStore{}, New("/tmp/x.json"))
	assert.IsType(t, &JSONStore{}, New("/tmp/x.JSON"))
	assert.IsType(t, &SQLiteStore{}, New("/tmp/x.db"))
	assert.IsType(t, &SQLiteStore{}, New("/tmp/x"))
}

func TestProviderRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := open()
			require.NoError(t, store.Init())
			t.Cleanup(func() { store.Close() })

			_, ok, err := store.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "k", "v1"))
			require.NoError(t, store.Set(ctx, "k", "v2"))

			value, ok, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v2", value)

			require.NoError(t, store.Remove(ctx, "k"))
			require.NoError(t, store.Remove(ctx, "k"), "removing an absent key is not an error")

			_, ok, err = store.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestProviderPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			first := open()
			require.NoError(t, first.Init())
			require.NoError(t, first.Set(ctx, "entries", `[{"id":1}]`))
			require.NoError(t, first.Close())

			second := open()
			require.NoError(t, second.Load())
			t.Cleanup(func() { second.Close() })

			value, ok, err := second.Get(ctx, "entries")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":1}]`, value)
		})
	}
}

func TestLifecycleErrors(t *testing.T) {
	ctx := context.Background()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := open()

			assert.ErrorIs(t, store.Load(), ErrNotInitialized)

			_, _, err := store.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrNotLoaded)
			assert.ErrorIs(t, store.Set(ctx, "k", "v"), ErrNotLoaded)

			require.NoError(t, store.Init())
			require.NoError(t, store.Close())

			again := open()
			assert.ErrorIs(t, again.Init(), ErrAlreadyInitialized)
			again.Close()
		})
	}
}

func TestJSONStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	err := NewJSONStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse storage")
}

func TestJSONStoreHonoursCancelledContext(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, store.Init())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Set(ctx, "k", "v"), context.Canceled)
	_, _, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
