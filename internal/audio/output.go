package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// SampleRate is the rate the speaker is opened at. Sources are resampled to it.
const SampleRate = beep.SampleRate(44100)

// Output mixes streamers onto a device. Lock guards mutation of playing streamers.
type Output interface {
	Play(streamer beep.Streamer)
	Lock()
	Unlock()
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

type speakerOutput struct{}

// NewSpeakerOutput opens the system speaker once per process.
func NewSpeakerOutput() (Output, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("init speaker: %w", speakerErr)
	}
	return speakerOutput{}, nil
}

func (speakerOutput) Play(streamer beep.Streamer) { speaker.Play(streamer) }
func (speakerOutput) Lock()                       { speaker.Lock() }
func (speakerOutput) Unlock()                     { speaker.Unlock() }

// withVolume scales a streamer by a linear volume in [0, 1].
func withVolume(streamer beep.Streamer, volume float64) beep.Streamer {
	if volume >= 1 {
		return streamer
	}
	if volume <= 0 {
		return &effects.Volume{Streamer: streamer, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: streamer, Base: 2, Volume: math.Log2(volume)}
}
