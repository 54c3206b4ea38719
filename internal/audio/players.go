package audio

import (
	"io"
	"log/slog"

	"cozypomodoro/internal/core/model"
	"cozypomodoro/internal/core/timekeeper"
)

// Nop is a silent cue and ambient player.
type Nop struct{}

func (Nop) PlayOnce() error    { return nil }
func (Nop) Play() error        { return nil }
func (Nop) Pause() error       { return nil }
func (Nop) SeekToStart() error { return nil }

// Players bundles the controller's audio collaborators.
type Players struct {
	Cue     timekeeper.CuePlayer
	Ambient timekeeper.AmbientPlayer
	track   *Track
}

// Setup builds players for config. Audio that cannot be opened degrades to
// silence so the timer keeps working.
func Setup(config model.AudioConfig, logger *slog.Logger) *Players {
	return setup(config, logger, NewSpeakerOutput)
}

func setup(config model.AudioConfig, logger *slog.Logger, open func() (Output, error)) *Players {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	players := &Players{Cue: Nop{}, Ambient: Nop{}}
	if !config.CueEnabled && config.AmbientTrack == "" {
		return players
	}

	output, err := open()
	if err != nil {
		logger.Warn("audio disabled", "error", err)
		return players
	}
	return newPlayers(output, config)
}

func newPlayers(output Output, config model.AudioConfig) *Players {
	players := &Players{Cue: Nop{}, Ambient: Nop{}}
	if config.CueEnabled {
		players.Cue = NewToneCue(output, SampleRate, config.CueVolume)
	}
	if config.AmbientTrack != "" {
		players.track = NewTrack(output, config.AmbientTrack, SampleRate, config.AmbientVolume)
		players.Ambient = players.track
	}
	return players
}

// Close releases the ambient track.
func (players *Players) Close() error {
	if players.track == nil {
		return nil
	}
	return players.track.Close()
}
