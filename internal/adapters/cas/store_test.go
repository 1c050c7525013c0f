package cas_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modpack/internal/adapters/cas"
	"go.trai.ch/modpack/internal/core/domain"
)

func lethalLib(version, downloadURL string) *domain.PackageMetadata {
	return &domain.PackageMetadata{
		Key:         domain.PackageKey{Namespace: "Evaisa", Name: "LethalLib"},
		Version:     version,
		DownloadURL: downloadURL,
	}
}

func TestStore_PathGet(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "archives")
	store := cas.NewStoreWithPath(dir)
	pkg := lethalLib("0.15.1", "https://thunderstore.io/package/download/Evaisa/LethalLib/0.15.1/")

	t.Run("miss before download", func(t *testing.T) {
		path, ok, err := store.Get(pkg)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, path)
	})

	path, err := store.Path(pkg)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "Evaisa-LethalLib-0.15.1-"))
	assert.Equal(t, ".zip", filepath.Ext(path))
	assert.DirExists(t, dir)

	require.NoError(t, os.WriteFile(path, []byte("PK"), domain.FilePerm))

	t.Run("hit after download", func(t *testing.T) {
		got, ok, err := store.Get(pkg)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, path, got)
	})
}

func TestStore_KeyIncludesVersionAndURL(t *testing.T) {
	t.Parallel()

	store := cas.NewStoreWithPath(t.TempDir())

	base, err := store.Path(lethalLib("0.15.1", "https://a.example/x.zip"))
	require.NoError(t, err)
	otherVersion, err := store.Path(lethalLib("0.15.0", "https://a.example/x.zip"))
	require.NoError(t, err)
	otherURL, err := store.Path(lethalLib("0.15.1", "https://b.example/x.zip"))
	require.NoError(t, err)
	again, err := store.Path(lethalLib("0.15.1", "https://a.example/x.zip"))
	require.NoError(t, err)

	assert.NotEqual(t, base, otherVersion)
	assert.NotEqual(t, base, otherURL)
	assert.Equal(t, base, again)
}

func TestStore_GetDirectoryInPlace(t *testing.T) {
	t.Parallel()

	store := cas.NewStoreWithPath(t.TempDir())
	pkg := lethalLib("0.15.1", "https://a.example/x.zip")

	path, err := store.Path(pkg)
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(path, domain.DirPerm))

	_, ok, err := store.Get(pkg)
	require.Error(t, err)
	assert.False(t, ok)
	assert.ErrorContains(t, err, domain.ErrArchiveCacheFailed.Error())
}

func TestStore_Clean(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "archives")
	store := cas.NewStoreWithPath(dir)
	assert.Equal(t, dir, store.Dir())

	path, err := store.Path(lethalLib("0.15.1", "https://a.example/x.zip"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("PK"), domain.FilePerm))

	require.NoError(t, store.Clean())
	assert.NoDirExists(t, dir)

	// Cleaning an absent cache is not an error.
	require.NoError(t, store.Clean())
}

func TestNewStore_UsesSettings(t *testing.T) {
	t.Parallel()

	settings := domain.DefaultSettings()
	settings.CacheDir = filepath.Join(t.TempDir(), "cache") + string(filepath.Separator)

	store := cas.NewStore(settings)
	assert.Equal(t, filepath.Clean(settings.CacheDir), store.Dir())
}
