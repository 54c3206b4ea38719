package terminal

import (
	"testing"
	"time"

	"cozypomodoro/internal/core/model"
	"cozypomodoro/internal/core/timekeeper"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idleSource struct{}

func (idleSource) Arm(time.Duration, func()) timekeeper.Disarmer {
	return disarmFunc(func() {})
}

type disarmFunc func()

func (fn disarmFunc) Disarm() { fn() }

func newModel(t *testing.T) (Model, *timekeeper.Controller) {
	t.Helper()
	registry := model.MustDefaultRegistry()
	controller := timekeeper.New(registry, timekeeper.Options{Source: idleSource{}})
	t.Cleanup(controller.Close)
	return New(controller, registry.All(), controller.Subscribe(16)), controller
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	next, ok := updated.(Model)
	require.True(t, ok)
	return next
}

func TestKeysDriveController(t *testing.T) {
	m, controller := newModel(t)

	m = press(t, m, "2")
	assert.Equal(t, "25_5", controller.Snapshot().PresetID)
	assert.Equal(t, 25*60, m.state.SecondsRemaining)

	m = press(t, m, "p")
	assert.True(t, m.state.Running)

	m = press(t, m, "s")
	assert.Equal(t, model.PhaseBreak, m.state.Phase)
	assert.False(t, m.state.Running)

	m = press(t, m, "w")
	assert.Equal(t, model.PhaseWork, m.state.Phase)
	m = press(t, m, "b")
	assert.Equal(t, model.PhaseBreak, m.state.Phase)

	m = press(t, m, "p")
	controller.Tick()
	m = press(t, m, "r")
	assert.Equal(t, 5*60, m.state.SecondsRemaining)
	assert.False(t, m.state.Running)
}

func TestOutOfRangePresetKeyIsIgnored(t *testing.T) {
	m, controller := newModel(t)

	m = press(t, m, "9")

	assert.Equal(t, "50_10", controller.Snapshot().PresetID)
	assert.Equal(t, 3000, m.state.SecondsRemaining)
}

func TestQuitKey(t *testing.T) {
	m, _ := newModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestEventsUpdateState(t *testing.T) {
	m, controller := newModel(t)
	cmd := m.Init()
	require.NotNil(t, cmd)

	controller.SelectPhase(model.PhaseBreak)
	msg := cmd()
	updated, next := m.Update(msg)

	assert.Equal(t, model.PhaseBreak, updated.(Model).state.Phase)
	assert.NotNil(t, next)
}

func TestClosedEventsQuit(t *testing.T) {
	m, controller := newModel(t)
	cmd := m.Init()

	controller.Close()
	updated, quit := m.Update(cmd())

	require.NotNil(t, quit)
	assert.Equal(t, tea.QuitMsg{}, quit())
	assert.NotNil(t, updated)
}

func TestViewShowsState(t *testing.T) {
	m, _ := newModel(t)
	m = press(t, m, "3")

	view := m.View()

	assert.Contains(t, view, "90:00 • Work — Cozy Pomodoro")
	assert.Contains(t, view, "🥐 90/20")
	assert.Contains(t, view, "90 min work, 20 min break")
	assert.NotContains(t, view, "25 min work, 5 min break")
	assert.Contains(t, view, "Work sessions completed: 0")
	assert.Contains(t, view, "paused")
	assert.Contains(t, view, "reset")
}
