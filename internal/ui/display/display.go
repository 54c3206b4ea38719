// Package display formats controller state for the presentation layers.
package display

import (
	"fmt"

	"cozypomodoro/internal/core/model"
	"cozypomodoro/internal/core/timekeeper"
)

// AppTitle is shown in window titles and headers.
const AppTitle = "Cozy Pomodoro"

// Footer is the line under the timer.
const Footer = "Stay focused. Be cozy. 🐱🥐"

var presetIcons = map[string]string{
	"50_10": "🍩",
	"25_5":  "🍪",
	"90_20": "🥐",
}

// FormatClock renders seconds as zero-padded mm:ss. Minutes are not wrapped at 60.
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

// PhaseLabel returns the capitalised phase name.
func PhaseLabel(phase model.Phase) string {
	if phase == model.PhaseBreak {
		return "Break"
	}
	return "Work"
}

// PhaseButtonLabel returns the phase switcher caption.
func PhaseButtonLabel(phase model.Phase) string {
	if phase == model.PhaseBreak {
		return "☕ Break"
	}
	return "📝 Work"
}

// Title returns the window title for state.
func Title(state timekeeper.State) string {
	return fmt.Sprintf("%s • %s — %s", FormatClock(state.SecondsRemaining), PhaseLabel(state.Phase), AppTitle)
}

// PresetButtonLabel returns the caption of a preset button.
func PresetButtonLabel(preset model.Preset) string {
	short := fmt.Sprintf("%d/%d", preset.WorkMinutes, preset.BreakMinutes)
	if icon, ok := presetIcons[preset.ID]; ok {
		return icon + " " + short
	}
	return "⏱ " + short
}

// PresetTooltip describes a preset's durations.
func PresetTooltip(preset model.Preset) string {
	return fmt.Sprintf("%d min work, %d min break", preset.WorkMinutes, preset.BreakMinutes)
}

// ToggleLabel returns the start/pause caption.
func ToggleLabel(running bool) string {
	if running {
		return "⏸️ Pause"
	}
	return "▶️ Start"
}

// SessionsLabel returns the completed-session counter line.
func SessionsLabel(sessions int) string {
	return fmt.Sprintf("Work sessions completed: %d", sessions)
}
