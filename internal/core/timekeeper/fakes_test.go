package timekeeper

import (
	"errors"
	"time"
)

var errDenied = errors.New("playback denied")

type manualHandle struct {
	interval time.Duration
	fn       func()
	disarms  int
}

func (handle *manualHandle) Disarm() {
	handle.disarms++
}

type manualSource struct {
	handles []*manualHandle
}

func (source *manualSource) Arm(interval time.Duration, fn func()) Disarmer {
	handle := &manualHandle{interval: interval, fn: fn}
	source.handles = append(source.handles, handle)
	return handle
}

func (source *manualSource) active() []*manualHandle {
	var active []*manualHandle
	for _, handle := range source.handles {
		if handle.disarms == 0 {
			active = append(active, handle)
		}
	}
	return active
}

func (source *manualSource) fire() {
	for _, handle := range source.active() {
		handle.fn()
	}
}

type memoryStore struct {
	values map[string]string
	sets   int
	err    error
}

func newMemoryStore(values map[string]string) *memoryStore {
	if values == nil {
		values = map[string]string{}
	}
	return &memoryStore{values: values}
}

func (store *memoryStore) Get(key string) (string, bool) {
	value, ok := store.values[key]
	return value, ok
}

func (store *memoryStore) Set(key, value string) error {
	store.sets++
	if store.err != nil {
		return store.err
	}
	store.values[key] = value
	return nil
}

type recordingCue struct {
	plays int
	err   error
}

func (cue *recordingCue) PlayOnce() error {
	cue.plays++
	return cue.err
}

type recordingAmbient struct {
	calls []string
	err   error
}

func (ambient *recordingAmbient) Play() error {
	ambient.calls = append(ambient.calls, "play")
	return ambient.err
}

func (ambient *recordingAmbient) Pause() error {
	ambient.calls = append(ambient.calls, "pause")
	return ambient.err
}

func (ambient *recordingAmbient) SeekToStart() error {
	ambient.calls = append(ambient.calls, "seek")
	return ambient.err
}

type harness struct {
	controller *Controller
	source     *manualSource
	store      *memoryStore
	cue        *recordingCue
	ambient    *recordingAmbient
}
