package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cozypomodoro/internal/core/timekeeper"
	"cozypomodoro/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func markedLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "*") {
			return line
		}
	}
	return ""
}

func TestPresetsListsDefaultSelection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "settings.yaml")

	stdout, _, err := runCommand(t, "presets", "--config", configPath)

	require.NoError(t, err)
	for _, id := range []string{"50_10", "25_5", "90_20"} {
		assert.Contains(t, stdout, id)
	}
	assert.Contains(t, markedLine(stdout), "50_10")
	assert.Contains(t, markedLine(stdout), "50 min work, 10 min break")
	assert.Contains(t, markedLine(stdout), "1h0m0s")
	assert.Contains(t, stdout, "25 min work, 5 min break")
	assert.Contains(t, stdout, "30m0s")
	_, statErr := os.Stat(configPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPresetFlagPersistsSelection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "settings.yaml")

	_, _, err := runCommand(t, "presets", "--config", configPath, "--preset", "90_20")
	require.NoError(t, err)

	stdout, _, err := runCommand(t, "presets", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, markedLine(stdout), "90_20")

	config, err := storage.LoadSettings(configPath)
	require.NoError(t, err)
	assert.Equal(t, "90_20", config.Preferences[timekeeper.PresetKey])
}

func TestBrokenSettingsFallBackToDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("tick_interval: [\n"), 0o644))

	stdout, stderr, err := runCommand(t, "presets", "--config", configPath)

	require.NoError(t, err)
	assert.Contains(t, markedLine(stdout), "50_10")
	assert.Contains(t, stderr, "settings unreadable")
}

func TestBrokenSettingsSurvivePresetSelection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "settings.yaml")
	original := []byte("ambient_track: /music/lofi.mp3\ncue_volume: 0.9\ntick_interval: 1sec\n")
	require.NoError(t, os.WriteFile(configPath, original, 0o644))

	stdout, stderr, err := runCommand(t, "presets", "--config", configPath, "--preset", "25_5")

	require.NoError(t, err)
	assert.Contains(t, markedLine(stdout), "25_5")
	assert.Contains(t, stderr, "settings unreadable")
	assert.Contains(t, stderr, "persist preset")

	onDisk, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, string(original), string(onDisk))
}

func TestNewRuntimeUsesConfiguredTickInterval(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("tick_interval: 10ms\npreferences:\n  presetId: \"25_5\"\n"), 0o644))

	rt, err := newRuntime(&rootOptions{configPath: configPath}, newLogger(io.Discard, false), false)
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, "25_5", rt.controller.Snapshot().PresetID)
	assert.Equal(t, 10*time.Millisecond, rt.config.TickInterval)
}

func TestTUIRequiresTerminal(t *testing.T) {
	if isTerminal() {
		t.Skip("stdout is a terminal")
	}

	_, _, err := runCommand(t, "tui", "--config", filepath.Join(t.TempDir(), "settings.yaml"))

	assert.ErrorIs(t, err, errNotTerminal)
}
