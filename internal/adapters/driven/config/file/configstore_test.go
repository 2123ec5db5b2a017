package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

func TestLoad_NoFile(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[chunking]
size = 800

[retrieval]
top_k = 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, 800, settings.Chunking.Size)
	assert.Equal(t, 5, settings.Retrieval.TopK)
	// Untouched keys keep their defaults.
	assert.Equal(t, 50, settings.Chunking.Overlap)
	assert.Equal(t, 2.0, settings.Ranker.CategoryWeight)
}

func TestLoad_MalformedTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[chunking\nsize ="), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, err = store.Load()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings := domain.DefaultSettings()
	settings.Embedding.Provider = "openai"
	settings.Embedding.Model = "text-embedding-3-small"
	settings.Ranker.MaxRecommendations = 3

	require.NoError(t, store.Save(settings))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNewConfigStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())

	_, err = os.Stat(dir)
	require.NoError(t, err)
}
