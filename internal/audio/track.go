package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat indicates a track extension with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

const resampleQuality = 4

// Decode picks a decoder from the file extension of name.
func Decode(file io.ReadCloser, name string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		return mp3.Decode(file)
	case ".ogg":
		return vorbis.Decode(file)
	case ".wav":
		return wav.Decode(file)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(name))
	}
}

// Track is a looping ambient track decoded lazily on first Play.
type Track struct {
	mu       sync.Mutex
	output   Output
	path     string
	rate     beep.SampleRate
	volume   float64
	source   beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	attached bool
}

// NewTrack creates a track for the audio file at path.
func NewTrack(output Output, path string, rate beep.SampleRate, volume float64) *Track {
	return &Track{output: output, path: path, rate: rate, volume: volume}
}

// Play resumes the track, loading it first if needed.
func (track *Track) Play() error {
	track.mu.Lock()
	defer track.mu.Unlock()

	if err := track.loadLocked(); err != nil {
		return err
	}
	track.output.Lock()
	track.ctrl.Paused = false
	track.output.Unlock()

	if !track.attached {
		track.output.Play(track.ctrl)
		track.attached = true
	}
	return nil
}

// Pause holds the track at its current position.
func (track *Track) Pause() error {
	track.mu.Lock()
	defer track.mu.Unlock()
	if track.ctrl == nil {
		return nil
	}
	track.output.Lock()
	track.ctrl.Paused = true
	track.output.Unlock()
	return nil
}

// SeekToStart rewinds the track. A track that never played is already at the start.
func (track *Track) SeekToStart() error {
	track.mu.Lock()
	defer track.mu.Unlock()
	if track.source == nil {
		return nil
	}
	track.output.Lock()
	err := track.source.Seek(0)
	track.output.Unlock()
	if err != nil {
		return fmt.Errorf("rewind track: %w", err)
	}
	return nil
}

// Close detaches the track from the output and releases the file.
func (track *Track) Close() error {
	track.mu.Lock()
	defer track.mu.Unlock()
	if track.source == nil {
		return nil
	}
	track.output.Lock()
	track.ctrl.Streamer = nil
	track.output.Unlock()

	err := track.source.Close()
	track.source = nil
	track.ctrl = nil
	track.attached = false
	if err != nil {
		return fmt.Errorf("close track: %w", err)
	}
	return nil
}

func (track *Track) loadLocked() error {
	if track.source != nil {
		return nil
	}

	file, err := os.Open(track.path)
	if err != nil {
		return fmt.Errorf("open track: %w", err)
	}
	source, format, err := Decode(file, track.path)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("decode track: %w", err)
	}

	var streamer beep.Streamer = beep.Loop(-1, source)
	if format.SampleRate != track.rate {
		streamer = beep.Resample(resampleQuality, format.SampleRate, track.rate, streamer)
	}
	track.source = source
	track.ctrl = &beep.Ctrl{Streamer: withVolume(streamer, track.volume), Paused: true}
	return nil
}
