package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Storage {
	local, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return map[string]Storage{
		"local":  local,
		"memory": NewMemoryStorage(),
	}
}

func TestStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get(ctx, "orca_apps")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, st.Put(ctx, "orca_apps", []byte(`[1]`)))
			require.NoError(t, st.Put(ctx, "orca_apps", []byte(`[1,2]`)))

			data, err := st.Get(ctx, "orca_apps")
			require.NoError(t, err)
			assert.JSONEq(t, `[1,2]`, string(data))

			require.NoError(t, st.Delete(ctx, "orca_apps"))
			require.NoError(t, st.Delete(ctx, "orca_apps"), "deleting a missing key is not an error")

			_, err = st.Get(ctx, "orca_apps")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLocalStorageLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := NewLocalStorage(dir)
	require.NoError(t, err)

	require.NoError(t, st.Put(context.Background(), "orca_user", []byte(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "orca_user.json", entries[0].Name())
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "orca_user.json", sanitizeKey("orca_user"))
	assert.Equal(t, ".._etc_passwd.json", sanitizeKey("../etc/passwd"))
	assert.Equal(t, filepath.Base(sanitizeKey("a/b")), sanitizeKey("a/b"))
}

func TestNewStorageRejectsUnknownType(t *testing.T) {
	_, err := NewStorage(context.Background(), StorageConfig{Type: "floppy"})
	assert.Error(t, err)
}

func TestNewStorageRequiresBucketForS3(t *testing.T) {
	_, err := NewStorage(context.Background(), StorageConfig{Type: StorageTypeS3})
	assert.Error(t, err)
}
