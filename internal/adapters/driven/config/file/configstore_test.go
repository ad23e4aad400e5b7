package file

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
)

func TestConfigStore_SetSaveLoad(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	store.Set(driven.ConfigKeyCatalogBaseURL, "https://books.example.com")
	store.Set(driven.ConfigKeySearchLimit, 20)
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://books.example.com", reloaded.GetString(driven.ConfigKeyCatalogBaseURL))
	assert.Equal(t, 20, reloaded.GetInt(driven.ConfigKeySearchLimit))
}

func TestConfigStore_UnsetKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
}

func TestConfigStore_Delete(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	store.Set(driven.ConfigKeySessionUserID, "u1")
	require.NoError(t, store.Save())
	store.Delete(driven.ConfigKeySessionUserID)
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Empty(t, reloaded.GetString(driven.ConfigKeySessionUserID))
}

func TestConfigStore_SetWithoutSaveNotPersisted(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	store.Set(driven.ConfigKeyCatalogToken, "abc")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Empty(t, reloaded.GetString(driven.ConfigKeyCatalogToken))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	store.Set(driven.ConfigKeyDebounceMillis, 500)
	require.NoError(t, store.Save())

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[search]")
}
