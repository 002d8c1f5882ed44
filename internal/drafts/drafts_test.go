package drafts

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "drafts.db"), logr.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sq,
	}
}

func TestStoreContract(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, "notes/missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, NoteKey("report"), "first"))
			require.NoError(t, s.Set(ctx, NoteKey("report"), "second"))
			require.NoError(t, s.Set(ctx, NoteKey("audit"), "a"))
			require.NoError(t, s.Set(ctx, "other/x", "x"))

			d, err := s.Get(ctx, "notes/report")
			require.NoError(t, err)
			assert.Equal(t, "second", d.Body)
			assert.False(t, d.UpdatedAt.IsZero())

			list, err := s.List(ctx, "notes/")
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "notes/audit", list[0].Key)
			assert.Equal(t, "notes/report", list[1].Key)

			all, err := s.List(ctx, "")
			require.NoError(t, err)
			assert.Len(t, all, 3)

			require.NoError(t, s.Delete(ctx, "notes/audit"))
			assert.ErrorIs(t, s.Delete(ctx, "notes/audit"), ErrNotFound)

			assert.ErrorIs(t, s.Set(ctx, "", "x"), ErrEmptyKey)
		})
	}
}

func TestStoreKeepsUnicodeBodies(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			body := "größer 🚀\nline two"
			require.NoError(t, s.Set(ctx, "notes/ü", body))
			d, err := s.Get(ctx, "notes/ü")
			require.NoError(t, err)
			assert.Equal(t, body, d.Body)

			list, err := s.List(ctx, "notes/ü")
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.db")
	ctx := context.Background()

	s, err := OpenSQLite(path, logr.Discard())
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1700000000123) }
	require.NoError(t, s.Set(ctx, "notes/a", "kept"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path, logr.Discard())
	require.NoError(t, err)
	defer s.Close()
	d, err := s.Get(ctx, "notes/a")
	require.NoError(t, err)
	assert.Equal(t, "kept", d.Body)
	assert.Equal(t, int64(1700000000123), d.UpdatedAt.UnixMilli())
}

func TestMemoryStoreHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	assert.ErrorIs(t, s.Set(ctx, "k", "v"), context.Canceled)
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "assetview", "drafts.db"), p)
}
