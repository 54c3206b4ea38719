// Package terminal renders the timer in a terminal with the same intents as
// the desktop widget.
package terminal

import (
	"strconv"
	"strings"

	"cozypomodoro/internal/core/model"
	"cozypomodoro/internal/core/timekeeper"
	"cozypomodoro/internal/ui/display"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controls are the user intents the terminal forwards.
type Controls interface {
	Snapshot() timekeeper.State
	SelectPreset(id string)
	SelectPhase(phase model.Phase)
	ToggleRunning()
	Reset()
	Skip()
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	activeStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFF7E8")).Background(lipgloss.Color("#D66E48"))
	inactiveStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#9C8F80"))
	workClock     = lipgloss.NewStyle().Bold(true).Padding(1, 4).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#D66E48"))
	breakClock    = workClock.BorderForeground(lipgloss.Color("#4E9E8C"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9C8F80"))
)

type eventMsg timekeeper.Event

type closedMsg struct{}

// Model is the bubbletea model of the timer screen.
type Model struct {
	controls Controls
	presets  []model.Preset
	events   <-chan timekeeper.Event
	state    timekeeper.State
	keys     keyMap
	help     help.Model
}

// New creates a terminal model. events is normally a controller subscription.
func New(controls Controls, presets []model.Preset, events <-chan timekeeper.Event) Model {
	return Model{
		controls: controls,
		presets:  presets,
		events:   events,
		state:    controls.Snapshot(),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// Run starts the terminal program in the alternate screen.
func Run(controls Controls, presets []model.Preset, events <-chan timekeeper.Event) error {
	program := tea.NewProgram(New(controls, presets, events), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.state = msg.State
		return m, waitForEvent(m.events)
	case closedMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.controls.ToggleRunning()
	case key.Matches(msg, m.keys.Reset):
		m.controls.Reset()
	case key.Matches(msg, m.keys.Skip):
		m.controls.Skip()
	case key.Matches(msg, m.keys.Work):
		m.controls.SelectPhase(model.PhaseWork)
	case key.Matches(msg, m.keys.Break):
		m.controls.SelectPhase(model.PhaseBreak)
	case key.Matches(msg, m.keys.Presets):
		index, err := strconv.Atoi(msg.String())
		if err != nil || index < 1 || index > len(m.presets) {
			return m, nil
		}
		m.controls.SelectPreset(m.presets[index-1].ID)
	default:
		return m, nil
	}
	m.state = m.controls.Snapshot()
	return m, nil
}

func (m Model) View() string {
	phases := lipgloss.JoinHorizontal(lipgloss.Top,
		tab(display.PhaseButtonLabel(model.PhaseWork), m.state.Phase == model.PhaseWork),
		tab(display.PhaseButtonLabel(model.PhaseBreak), m.state.Phase == model.PhaseBreak),
	)

	presetTabs := make([]string, 0, len(m.presets))
	hint := ""
	for index, preset := range m.presets {
		label := strconv.Itoa(index+1) + " " + display.PresetButtonLabel(preset)
		selected := preset.ID == m.state.PresetID
		presetTabs = append(presetTabs, tab(label, selected))
		if selected {
			hint = display.PresetTooltip(preset)
		}
	}

	clockStyle := workClock
	if m.state.Phase == model.PhaseBreak {
		clockStyle = breakClock
	}
	status := "paused"
	if m.state.Running {
		status = "running"
	}

	var builder strings.Builder
	builder.WriteString(titleStyle.Render(display.Title(m.state)))
	builder.WriteString("\n")
	builder.WriteString(phases)
	builder.WriteString("\n")
	builder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, presetTabs...))
	builder.WriteString("\n")
	if hint != "" {
		builder.WriteString(mutedStyle.Render(hint))
		builder.WriteString("\n")
	}
	builder.WriteString(clockStyle.Render(display.FormatClock(m.state.SecondsRemaining)))
	builder.WriteString("\n")
	builder.WriteString(mutedStyle.Render(status + " · " + display.SessionsLabel(m.state.CompletedWorkSessions)))
	builder.WriteString("\n\n")
	builder.WriteString(m.help.View(m.keys))
	builder.WriteString("\n")
	builder.WriteString(mutedStyle.Render(display.Footer))
	return builder.String()
}

func tab(label string, active bool) string {
	if active {
		return activeStyle.Render(label)
	}
	return inactiveStyle.Render(label)
}

func waitForEvent(events <-chan timekeeper.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(event)
	}
}
