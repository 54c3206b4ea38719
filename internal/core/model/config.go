package model

import "time"

// AudioConfig describes the cue and ambient players.
type AudioConfig struct {
	CueEnabled    bool
	CueVolume     float64
	AmbientTrack  string
	AmbientVolume float64
}

// AppConfig contains runtime settings loaded from the settings file.
type AppConfig struct {
	Audio        AudioConfig
	TickInterval time.Duration
	Preferences  map[string]string
}

// DefaultAppConfig returns the settings used when no file exists.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Audio: AudioConfig{
			CueEnabled:    true,
			CueVolume:     0.5,
			AmbientVolume: 0.25,
		},
		TickInterval: time.Second,
		Preferences:  map[string]string{},
	}
}
