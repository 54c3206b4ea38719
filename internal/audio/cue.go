package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
)

const (
	cueFrequency     = 2048.0
	cueBeepLength    = 90 * time.Millisecond
	cueBeepGap       = 60 * time.Millisecond
	cueBurstGap      = 400 * time.Millisecond
	cueBeepsPerBurst = 4
	cueBursts        = 3
)

// ToneCue plays a generated digital-watch alarm.
type ToneCue struct {
	output  Output
	rate    beep.SampleRate
	volume  float64
	current *beep.Ctrl
}

// NewToneCue creates a cue mixed into output at rate.
func NewToneCue(output Output, rate beep.SampleRate, volume float64) *ToneCue {
	return &ToneCue{output: output, rate: rate, volume: volume}
}

// PlayOnce stops any alarm still sounding and plays it again from the start.
func (cue *ToneCue) PlayOnce() error {
	pattern, err := alarmPattern(cue.rate)
	if err != nil {
		return fmt.Errorf("build cue tone: %w", err)
	}
	ctrl := &beep.Ctrl{Streamer: withVolume(pattern, cue.volume)}

	cue.output.Lock()
	if cue.current != nil {
		cue.current.Streamer = nil
	}
	cue.current = ctrl
	cue.output.Unlock()

	cue.output.Play(ctrl)
	return nil
}

func alarmPattern(rate beep.SampleRate) (beep.Streamer, error) {
	var parts []beep.Streamer
	for burst := 0; burst < cueBursts; burst++ {
		for index := 0; index < cueBeepsPerBurst; index++ {
			tone, err := generators.SineTone(rate, cueFrequency)
			if err != nil {
				return nil, err
			}
			parts = append(parts,
				beep.Take(rate.N(cueBeepLength), tone),
				generators.Silence(rate.N(cueBeepGap)),
			)
		}
		parts = append(parts, generators.Silence(rate.N(cueBurstGap)))
	}
	return beep.Seq(parts...), nil
}

func alarmLength(rate beep.SampleRate) int {
	perBurst := cueBeepsPerBurst*(rate.N(cueBeepLength)+rate.N(cueBeepGap)) + rate.N(cueBurstGap)
	return cueBursts * perBurst
}
