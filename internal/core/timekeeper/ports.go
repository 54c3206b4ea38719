package timekeeper

import "time"

// PresetKey is the preference key holding the last selected preset id.
const PresetKey = "presetId"

// PreferenceStore persists single string values by key.
type PreferenceStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// CuePlayer plays the phase-change alarm, restarting it from zero on every call.
type CuePlayer interface {
	PlayOnce() error
}

// AmbientPlayer controls the looping background track.
type AmbientPlayer interface {
	Play() error
	Pause() error
	SeekToStart() error
}

// TickSource arms a periodic callback.
type TickSource interface {
	Arm(interval time.Duration, fn func()) Disarmer
}

// Disarmer stops an armed tick source. Disarm must be idempotent.
type Disarmer interface {
	Disarm()
}

type nopStore struct{}

func (nopStore) Get(string) (string, bool) { return "", false }
func (nopStore) Set(string, string) error  { return nil }

type nopCue struct{}

func (nopCue) PlayOnce() error { return nil }

type nopAmbient struct{}

func (nopAmbient) Play() error        { return nil }
func (nopAmbient) Pause() error       { return nil }
func (nopAmbient) SeekToStart() error { return nil }
