package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, base string) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), base, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestNewKeyFormat(t *testing.T) {
	store := newTestStore(t, "")

	key := store.NewKey("My Photo.JPG")
	assert.Regexp(t, regexp.MustCompile(`^\d+-[0-9a-f]{8}\.jpg$`), key)

	other := store.NewKey("My Photo.JPG")
	assert.NotEqual(t, key, other)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t, "")

	path := filepath.Join(store.Root(), "123-abcd1234.jpg")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))

	require.NoError(t, store.Remove("123-abcd1234.jpg"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissingReportsError(t *testing.T) {
	store := newTestStore(t, "")
	assert.Error(t, store.Remove("never-existed.jpg"))
}

func TestRemoveRejectsTraversal(t *testing.T) {
	store := newTestStore(t, "")
	assert.Error(t, store.Remove("../outside.jpg"))
}

func TestRemoveSkipsURLsAndEmpty(t *testing.T) {
	store := newTestStore(t, "")
	assert.NoError(t, store.Remove(""))
	assert.NoError(t, store.Remove("https://cdn.example.com/a.jpg"))
}

func TestURLResolution(t *testing.T) {
	relative := newTestStore(t, "")
	assert.Equal(t, "/public/photos/a.jpg", relative.URL("a.jpg"))

	absolute := newTestStore(t, "https://parts.example.com/")
	assert.Equal(t, "https://parts.example.com/public/photos/a.jpg", absolute.URL("a.jpg"))

	// already-absolute values pass through
	assert.Equal(t, "https://cdn.example.com/x.png", absolute.URL("https://cdn.example.com/x.png"))
	assert.Equal(t, "", absolute.URL(""))
}
