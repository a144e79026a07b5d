package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func writeBlob(t *testing.T, s Store, name, data string) {
	t.Helper()
	w, err := s.Create(context.Background(), name)
	require.NoError(t, err)
	_, err = w.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func readBlob(t *testing.T, s Store, name string) string {
	t.Helper()
	r, err := s.Open(context.Background(), name)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

// testStore exercises the Store contract shared by all implementations.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("OpenMissing", func(t *testing.T) {
		_, err := s.Open(ctx, "missing.bin")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CreateOpenRoundTrip", func(t *testing.T) {
		writeBlob(t, s, "models/a.model", "payload-a")
		assert.Equal(t, "payload-a", readBlob(t, s, "models/a.model"))
	})

	t.Run("Overwrite", func(t *testing.T) {
		writeBlob(t, s, "models/a.model", "payload-a2")
		assert.Equal(t, "payload-a2", readBlob(t, s, "models/a.model"))
	})

	t.Run("ListSortedByPrefix", func(t *testing.T) {
		writeBlob(t, s, "models/b.model", "payload-b")
		writeBlob(t, s, "other/c.model", "payload-c")

		names, err := s.List(ctx, "models/")
		require.NoError(t, err)
		assert.Equal(t, []string{"models/a.model", "models/b.model"}, names)
	})

	t.Run("DeleteAndDeleteMissing", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "models/b.model"))
		_, err := s.Open(ctx, "models/b.model")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting again is not an error.
		assert.NoError(t, s.Delete(ctx, "models/b.model"))
	})
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_AtomicCreate(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)

	w, err := s.Create(context.Background(), "m.model")
	require.NoError(t, err)
	_, err = w.Write([]byte("half-written"))
	require.NoError(t, err)

	// Until Close, the final name must not exist.
	_, err = os.Stat(filepath.Join(dir, "m.model"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, w.Close())
	_, err = os.Stat(filepath.Join(dir, "m.model"))
	assert.NoError(t, err)
}

func TestLocalStore_ListSkipsDotfilesAndMissingRoot(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)

	names, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644))
	writeBlob(t, s, "visible.model", "x")

	names, err = s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.model"}, names)

	missing := NewLocalStore(filepath.Join(dir, "does-not-exist"))
	names, err = missing.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStore_VisibleOnlyAfterClose(t *testing.T) {
	s := NewMemoryStore()
	w, err := s.Create(context.Background(), "m.model")
	require.NoError(t, err)
	_, err = w.Write([]byte("data"))
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "m.model")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Close())
	assert.Equal(t, "data", readBlob(t, s, "m.model"))
}

func TestThrottled(t *testing.T) {
	testStore(t, NewThrottled(NewMemoryStore(), rate.NewLimiter(rate.Inf, 1)))
}

func TestThrottled_RespectsContextCancellation(t *testing.T) {
	s := NewThrottled(NewMemoryStore(), rate.NewLimiter(rate.Every(time.Hour), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Open(ctx, "m.model")
	assert.ErrorIs(t, err, context.Canceled)
}
