package timekeeper

import (
	"time"

	"cozypomodoro/internal/core/model"
)

// State is the derived display state of the controller.
type State struct {
	PresetID              string
	Phase                 model.Phase
	Running               bool
	SecondsRemaining      int
	CompletedWorkSessions int
}

// EventType defines the type of controller event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventExpired     EventType = "expired"
)

// Event represents a controller update for observers.
type Event struct {
	Type  EventType
	State State
	At    time.Time
}
