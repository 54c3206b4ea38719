package timekeeper

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"cozypomodoro/internal/core/model"
)

// Options contains the collaborators and runtime options of a Controller.
// Nil collaborators are replaced with no-op implementations.
type Options struct {
	TickInterval time.Duration
	Source       TickSource
	Store        PreferenceStore
	Cue          CuePlayer
	Ambient      AmbientPlayer
	Logger       *slog.Logger
}

// Controller is the focus/break state machine. It is the only writer of the
// phase, running flag, remaining time and session count.
type Controller struct {
	mu         sync.Mutex
	registry   *model.Registry
	options    Options
	logger     *slog.Logger
	preset     model.Preset
	phase      model.Phase
	running    bool
	remaining  int
	sessions   int
	armed      Disarmer
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates a Controller in the idle Work phase of the stored preset.
func New(registry *model.Registry, options Options) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Source == nil {
		options.Source = NewTickerSource()
	}
	if options.Store == nil {
		options.Store = nopStore{}
	}
	if options.Cue == nil {
		options.Cue = nopCue{}
	}
	if options.Ambient == nil {
		options.Ambient = nopAmbient{}
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	storedID, _ := options.Store.Get(PresetKey)
	preset := registry.Resolve(storedID)
	if storedID != "" && storedID != preset.ID {
		logger.Warn("stored preset unknown, using default", "stored", storedID, "preset", preset.ID)
	}

	return &Controller{
		registry:  registry,
		options:   options,
		logger:    logger,
		preset:    preset,
		phase:     model.PhaseWork,
		remaining: preset.Seconds(model.PhaseWork),
	}
}

// Registry returns the presets the controller selects from.
func (controller *Controller) Registry() *model.Registry {
	return controller.registry
}

// Snapshot returns the current display state.
func (controller *Controller) Snapshot() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.stateLocked()
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		close(ch)
		return ch
	}
	controller.events = append(controller.events, ch)
	return ch
}

// Close disarms the tick source, stops the ambient track and closes observers.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.disarmLocked()
	controller.setRunningLocked(false)
	controller.closed = true
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// SelectPreset switches to the preset named by id, or the default preset for
// unknown ids, and restarts the idle Work phase.
func (controller *Controller) SelectPreset(id string) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.disarmLocked()
	preset, ok := controller.registry.Lookup(id)
	if !ok {
		preset = controller.registry.Default()
		controller.logger.Warn("unknown preset, using default", "requested", id, "preset", preset.ID)
	}
	controller.preset = preset
	controller.phase = model.PhaseWork
	controller.remaining = preset.Seconds(model.PhaseWork)
	controller.setRunningLocked(false)

	if err := controller.options.Store.Set(PresetKey, preset.ID); err != nil {
		controller.logger.Warn("persist preset", "preset", preset.ID, "error", err)
	}
	controller.rewindAmbientLocked()
	controller.emitStateLocked(EventStateChange)
}

// SelectPhase switches to phase at its full duration and stops the timer.
func (controller *Controller) SelectPhase(phase model.Phase) {
	if !phase.Valid() {
		controller.logger.Warn("ignoring unknown phase", "phase", phase)
		return
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.disarmLocked()
	controller.phase = phase
	controller.remaining = controller.preset.Seconds(phase)
	controller.setRunningLocked(false)
	controller.emitStateLocked(EventStateChange)
}

// ToggleRunning starts a stopped timer or stops a running one.
func (controller *Controller) ToggleRunning() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.closed {
		return
	}
	controller.disarmLocked()
	controller.setRunningLocked(!controller.running)
	if controller.running {
		controller.armLocked()
	}
	controller.emitStateLocked(EventStateChange)
}

// Reset stops the timer and refills the current phase.
func (controller *Controller) Reset() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.disarmLocked()
	controller.setRunningLocked(false)
	controller.remaining = controller.preset.Seconds(controller.phase)
	controller.rewindAmbientLocked()
	controller.emitStateLocked(EventStateChange)
}

// Skip sounds the cue and moves to the other phase without counting a session.
func (controller *Controller) Skip() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.disarmLocked()
	controller.playCueLocked()
	controller.phase = controller.phase.Next()
	controller.remaining = controller.preset.Seconds(controller.phase)
	controller.setRunningLocked(false)
	controller.emitStateLocked(EventStateChange)
}

// Tick advances a running timer by one second. It is a no-op while stopped.
func (controller *Controller) Tick() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.tickLocked()
}

func (controller *Controller) tickArmed(generation uint64) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.armed == nil || controller.generation != generation {
		return
	}
	controller.tickLocked()
}

func (controller *Controller) tickLocked() {
	if !controller.running {
		return
	}

	if controller.remaining > 1 {
		controller.remaining--
		controller.emitStateLocked(EventProgress)
		return
	}

	controller.disarmLocked()
	controller.remaining = 0
	controller.playCueLocked()
	if controller.phase == model.PhaseWork {
		controller.sessions++
	}
	controller.phase = controller.phase.Next()
	controller.setRunningLocked(false)
	controller.emitStateLocked(EventExpired)

	controller.remaining = controller.preset.Seconds(controller.phase)
	controller.emitStateLocked(EventStateChange)
}

func (controller *Controller) armLocked() {
	controller.generation++
	generation := controller.generation
	controller.armed = controller.options.Source.Arm(controller.options.TickInterval, func() {
		controller.tickArmed(generation)
	})
}

func (controller *Controller) disarmLocked() {
	if controller.armed == nil {
		return
	}
	controller.armed.Disarm()
	controller.armed = nil
	controller.generation++
}

func (controller *Controller) setRunningLocked(running bool) {
	if controller.running == running {
		return
	}
	controller.running = running

	var err error
	if running {
		err = controller.options.Ambient.Play()
	} else {
		err = controller.options.Ambient.Pause()
	}
	if err != nil {
		controller.logger.Debug("ambient playback", "running", running, "error", err)
	}
}

func (controller *Controller) rewindAmbientLocked() {
	if err := controller.options.Ambient.SeekToStart(); err != nil {
		controller.logger.Debug("ambient rewind", "error", err)
	}
}

func (controller *Controller) playCueLocked() {
	if err := controller.options.Cue.PlayOnce(); err != nil {
		controller.logger.Debug("cue playback", "error", err)
	}
}

func (controller *Controller) stateLocked() State {
	return State{
		PresetID:              controller.preset.ID,
		Phase:                 controller.phase,
		Running:               controller.running,
		SecondsRemaining:      controller.remaining,
		CompletedWorkSessions: controller.sessions,
	}
}

func (controller *Controller) emitStateLocked(eventType EventType) {
	event := Event{
		Type:  eventType,
		State: controller.stateLocked(),
		At:    time.Now(),
	}
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}
