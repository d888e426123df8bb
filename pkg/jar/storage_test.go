package jar

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapjar/pkg/types"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jars.json")
	s, err := NewStorage(path)
	require.NoError(t, err)
	return s, path
}

func TestStorageCreateAndGet(t *testing.T) {
	s, _ := newTestStorage(t)

	j := NewJar("coffee-fund", "Coffee Fund", validAddress(), types.AssetUSDC)
	require.NoError(t, s.Create(j))

	got, err := s.Get(j.ID)
	require.NoError(t, err)
	assert.Equal(t, "coffee-fund", got.Slug)

	got, err = s.GetBySlug("coffee-fund")
	require.NoError(t, err)
	assert.Equal(t, j.ID, got.ID)

	assert.Equal(t, 1, s.Count())
}

func TestStorageRejectsDuplicateSlug(t *testing.T) {
	s, _ := newTestStorage(t)

	require.NoError(t, s.Create(NewJar("coffee-fund", "First", validAddress(), types.AssetXLM)))

	err := s.Create(NewJar("coffee-fund", "Second", validAddress(), types.AssetXLM))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestStorageRejectsInvalidJar(t *testing.T) {
	s, _ := newTestStorage(t)

	err := s.Create(NewJar("coffee-fund", "Bad Address", "GSHORT", types.AssetXLM))
	assert.Error(t, err)
	assert.Equal(t, 0, s.Count())
}

func TestStorageSurvivesReload(t *testing.T) {
	s, path := newTestStorage(t)

	j := NewJar("tips", "Tips", validAddress(), types.AssetXLM)
	require.NoError(t, s.Create(j))

	reloaded, err := NewStorage(path)
	require.NoError(t, err)

	got, err := reloaded.GetBySlug("tips")
	require.NoError(t, err)
	assert.Equal(t, j.ID, got.ID)
	assert.Equal(t, types.AssetXLM, got.PreferredAsset)
}

func TestStorageGetMissing(t *testing.T) {
	s, _ := newTestStorage(t)

	_, err := s.Get("nope")
	assert.Error(t, err)

	_, err = s.GetBySlug("nope")
	assert.Error(t, err)
}
