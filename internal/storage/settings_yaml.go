package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cozypomodoro/internal/core/model"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	CueEnabled    *bool             `yaml:"cue_enabled,omitempty"`
	CueVolume     *float64          `yaml:"cue_volume,omitempty"`
	AmbientTrack  string            `yaml:"ambient_track,omitempty"`
	AmbientVolume *float64          `yaml:"ambient_volume,omitempty"`
	TickInterval  string            `yaml:"tick_interval,omitempty"`
	Preferences   map[string]string `yaml:"preferences,omitempty"`
}

// DefaultSettingsPath returns the settings file location under the user config dir.
func DefaultSettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads settings from the YAML file at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse settings yaml: %w", err)
	}

	if err := applyYamlSettings(&config, fileData); err != nil {
		return model.DefaultAppConfig(), err
	}
	return config, nil
}

// SaveSettings atomically writes settings to the YAML file at path.
func SaveSettings(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	cueEnabled := config.Audio.CueEnabled
	cueVolume := config.Audio.CueVolume
	ambientVolume := config.Audio.AmbientVolume
	fileData := yamlSettings{
		CueEnabled:    &cueEnabled,
		CueVolume:     &cueVolume,
		AmbientTrack:  config.Audio.AmbientTrack,
		AmbientVolume: &ambientVolume,
		Preferences:   config.Preferences,
	}
	if config.TickInterval > 0 {
		fileData.TickInterval = config.TickInterval.String()
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(serialized)); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(config *model.AppConfig, fileData yamlSettings) error {
	if fileData.CueEnabled != nil {
		config.Audio.CueEnabled = *fileData.CueEnabled
	}
	if fileData.CueVolume != nil && validVolume(*fileData.CueVolume) {
		config.Audio.CueVolume = *fileData.CueVolume
	}
	if fileData.AmbientVolume != nil && validVolume(*fileData.AmbientVolume) {
		config.Audio.AmbientVolume = *fileData.AmbientVolume
	}
	config.Audio.AmbientTrack = fileData.AmbientTrack

	if fileData.TickInterval != "" {
		interval, err := time.ParseDuration(fileData.TickInterval)
		if err != nil {
			return fmt.Errorf("parse tick_interval: %w", err)
		}
		if interval > 0 {
			config.TickInterval = interval
		}
	}

	for key, value := range fileData.Preferences {
		config.Preferences[key] = value
	}
	return nil
}

func validVolume(volume float64) bool {
	return volume >= 0 && volume <= 1
}
