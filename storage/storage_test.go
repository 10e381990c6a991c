package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/billing-console/storage"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s storage.Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, storage.KeyAccessToken, "abc"))
	require.NoError(t, s.Set(ctx, storage.KeyRefreshToken, "def"))

	v, ok, err := s.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", v)

	require.NoError(t, s.Remove(ctx, storage.KeyAccessToken, storage.KeyUser))

	_, ok, err = s.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, ok)

	v, ok, err = s.Get(ctx, storage.KeyRefreshToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "def", v)
}

func TestMemory(t *testing.T) {
	testStore(t, storage.NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	f, err := storage.NewFile(path)
	require.NoError(t, err)
	testStore(t, f)

	t.Run("values survive a new instance", func(t *testing.T) {
		reopened, err := storage.NewFile(path)
		require.NoError(t, err)
		v, ok, err := reopened.Get(context.Background(), storage.KeyRefreshToken)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "def", v)
	})

	t.Run("file is private", func(t *testing.T) {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}

func TestFile_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	f, err := storage.NewFile(path)
	require.NoError(t, err)

	_, _, err = f.Get(context.Background(), storage.KeyUser)
	require.Error(t, err)

	// Removing keys replaces the unreadable document.
	require.NoError(t, f.Remove(context.Background(), storage.SessionKeys...))
	_, ok, err := f.Get(context.Background(), storage.KeyUser)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNewFile_RequiresPath(t *testing.T) {
	_, err := storage.NewFile("")
	require.Error(t, err)
}
