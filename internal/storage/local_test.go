package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katryana/airport-api/config"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "http://localhost:8080/uploads")

	url, err := store.Save(context.Background(), "plane.PNG", strings.NewReader("image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestLocalStore_Save_uniqueNames(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost/uploads")

	first, err := store.Save(context.Background(), "plane.png", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "plane.png", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNew_selectsBackend(t *testing.T) {
	store, err := New(config.StorageConfig{Backend: "local", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = New(config.StorageConfig{Backend: "ftp"})
	assert.Error(t, err)
}
