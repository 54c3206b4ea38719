package storage

import (
	"os"
	"path/filepath"
	"testing"

	"cozypomodoro/internal/core/model"
	"cozypomodoro/internal/core/timekeeper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ timekeeper.PreferenceStore = (*FileStore)(nil)

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	store, _, err := OpenFileStore(path)
	require.NoError(t, err)
	_, ok := store.Get(timekeeper.PresetKey)
	assert.False(t, ok)

	require.NoError(t, store.Set(timekeeper.PresetKey, "25_5"))

	reopened, config, err := OpenFileStore(path)
	require.NoError(t, err)
	value, ok := reopened.Get(timekeeper.PresetKey)
	assert.True(t, ok)
	assert.Equal(t, "25_5", value)
	assert.Equal(t, 0.25, config.Audio.AmbientVolume)
}

func TestFileStoreSkipsUnchangedWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	config := model.DefaultAppConfig()
	config.Preferences[timekeeper.PresetKey] = "50_10"
	store := NewFileStore(path, config)

	require.NoError(t, store.Set(timekeeper.PresetKey, "50_10"))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreDoesNotAliasConfig(t *testing.T) {
	config := model.DefaultAppConfig()
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.yaml"), config)

	require.NoError(t, store.Set("k", "v"))

	_, ok := config.Preferences["k"]
	assert.False(t, ok)
}

func TestFileStoreDrivesControllerRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store, _, err := OpenFileStore(path)
	require.NoError(t, err)
	registry := model.MustDefaultRegistry()

	first := timekeeper.New(registry, timekeeper.Options{Store: store})
	first.SelectPreset("90_20")
	first.Close()

	reopened, _, err := OpenFileStore(path)
	require.NoError(t, err)
	second := timekeeper.New(registry, timekeeper.Options{Store: reopened})
	defer second.Close()

	state := second.Snapshot()
	assert.Equal(t, "90_20", state.PresetID)
	assert.Equal(t, 90*60, state.SecondsRemaining)
}

func TestFileStoreKeepsValueOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	config := model.DefaultAppConfig()
	config.Preferences[timekeeper.PresetKey] = "50_10"
	store := NewFileStore(filepath.Join(blocker, "settings.yaml"), config)

	err := store.Set(timekeeper.PresetKey, "25_5")

	require.Error(t, err)
	value, _ := store.Get(timekeeper.PresetKey)
	assert.Equal(t, "50_10", value)
}

func TestReadOnlyFileStoreNeverWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	original := []byte("ambient_track: /music/lofi.mp3\ncue_volume: 0.9\ntick_interval: 1sec\n")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	config, err := LoadSettings(path)
	require.Error(t, err)
	store := NewReadOnlyFileStore(path, config)
	require.True(t, store.ReadOnly())

	err = store.Set(timekeeper.PresetKey, "25_5")
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.NoError(t, store.Set(timekeeper.PresetKey, "90_20"))

	value, ok := store.Get(timekeeper.PresetKey)
	assert.True(t, ok)
	assert.Equal(t, "90_20", value)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, onDisk)
}
