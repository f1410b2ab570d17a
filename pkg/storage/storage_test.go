package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jobboard-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, maxBytes int64) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := New(&config.StorageConfig{Dir: dir, MaxUploadBytes: maxBytes})
	require.NoError(t, err)
	return store, dir
}

func TestSaveAndOpen(t *testing.T) {
	store, dir := testStore(t, 0)

	path, size, err := store.Save(strings.NewReader("hello"), "pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	f, err := store.Open(path)
	require.NoError(t, err)
	defer f.Close()

	data, err := os.ReadFile(filepath.Join(dir, path))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestSaveEnforcesLimit(t *testing.T) {
	store, dir := testStore(t, 4)

	_, _, err := store.Save(strings.NewReader("too big"), "pdf")
	assert.ErrorIs(t, err, ErrTooLarge)

	// The partial write was cleaned up
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveMissingIsNotAnError(t *testing.T) {
	store, _ := testStore(t, 0)
	assert.NoError(t, store.Remove("no-such-file.pdf"))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, _ := testStore(t, 0)

	first, _, err := store.Save(strings.NewReader("a"), "png")
	require.NoError(t, err)
	second, _, err := store.Save(strings.NewReader("b"), "png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
