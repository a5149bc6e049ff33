package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(Config{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)
	return store
}

func TestLocalStoreSaveAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	key := "profiles/p1/photos/a_gallery.jpg"

	require.NoError(t, store.Save(ctx, key, strings.NewReader("jpeg bytes"), "image/jpeg"))

	data, err := os.ReadFile(filepath.Join(store.basePath, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(store.basePath, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	// Empty photo directory is swept along with its last rendition.
	_, err = os.Stat(filepath.Join(store.basePath, "profiles", "p1", "photos"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreDeleteMissingKeyIsNoError(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Delete(context.Background(), "profiles/p1/photos/gone_thumb.jpg"))
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(context.Background(), "../outside.jpg", strings.NewReader("x"), "image/jpeg")
	assert.ErrorContains(t, err, "invalid object key")

	err = store.Delete(context.Background(), "/etc/passwd")
	assert.ErrorContains(t, err, "invalid object key")
}

func TestLocalStoreURL(t *testing.T) {
	store := newTestStore(t)
	url, err := store.GetURL(context.Background(), "profiles/p1/photos/a_card.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/files/profiles/p1/photos/a_card.jpg", url)

	withBase, err := NewLocalStore(Config{BasePath: t.TempDir(), BaseURL: "https://cdn.example.com/"})
	require.NoError(t, err)
	url, err = withBase.GetURL(context.Background(), "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.jpg", url)
}
