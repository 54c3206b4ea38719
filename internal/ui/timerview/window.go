package timerview

import (
	"image/color"

	"cozypomodoro/internal/core/model"
	"cozypomodoro/internal/core/timekeeper"
	"cozypomodoro/internal/ui/display"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Controls are the user intents the widget forwards.
type Controls interface {
	Snapshot() timekeeper.State
	SelectPreset(id string)
	SelectPhase(phase model.Phase)
	ToggleRunning()
	Reset()
	Skip()
}

var (
	workColor  = color.NRGBA{R: 214, G: 110, B: 72, A: 255}
	breakColor = color.NRGBA{R: 78, G: 158, B: 140, A: 255}
)

const clockTextSize = 72

// Window is the single-screen timer widget.
type Window struct {
	window        fyne.Window
	controls      Controls
	presets       []model.Preset
	workButton    *widget.Button
	breakButton   *widget.Button
	presetButtons map[string]*widget.Button
	clock         *canvas.Text
	toggleButton  *widget.Button
	resetButton   *widget.Button
	skipButton    *widget.Button
	sessionsLabel *widget.Label
}

// New builds the timer window for controls.
func New(app fyne.App, controls Controls, presets []model.Preset) *Window {
	window := app.NewWindow(display.AppTitle)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:        window,
		controls:      controls,
		presets:       presets,
		presetButtons: make(map[string]*widget.Button, len(presets)),
	}

	view.workButton = widget.NewButton(display.PhaseButtonLabel(model.PhaseWork), func() {
		view.apply(func() { controls.SelectPhase(model.PhaseWork) })
	})
	view.breakButton = widget.NewButton(display.PhaseButtonLabel(model.PhaseBreak), func() {
		view.apply(func() { controls.SelectPhase(model.PhaseBreak) })
	})

	presetRow := container.NewHBox(layout.NewSpacer())
	for _, preset := range presets {
		id := preset.ID
		button := widget.NewButton(display.PresetButtonLabel(preset), func() {
			view.apply(func() { controls.SelectPreset(id) })
		})
		view.presetButtons[id] = button
		presetRow.Add(button)
	}
	presetRow.Add(layout.NewSpacer())

	view.clock = canvas.NewText("--:--", workColor)
	view.clock.Alignment = fyne.TextAlignCenter
	view.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.clock.TextSize = clockTextSize

	view.toggleButton = widget.NewButton(display.ToggleLabel(false), func() {
		view.apply(controls.ToggleRunning)
	})
	view.resetButton = widget.NewButton("🔄 Reset", func() {
		view.apply(controls.Reset)
	})
	view.skipButton = widget.NewButton("🌸 Take a break", func() {
		view.apply(controls.Skip)
	})

	view.sessionsLabel = widget.NewLabelWithStyle(display.SessionsLabel(0), fyne.TextAlignCenter, fyne.TextStyle{})

	header := container.NewVBox(
		widget.NewLabelWithStyle(display.AppTitle+" 🐾☕📓", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		container.NewHBox(layout.NewSpacer(), view.workButton, view.breakButton, layout.NewSpacer()),
		presetRow,
	)
	controlsRow := container.NewHBox(layout.NewSpacer(), view.toggleButton, view.resetButton, view.skipButton, layout.NewSpacer())
	body := container.NewVBox(view.clock, controlsRow, view.sessionsLabel)
	footer := widget.NewLabelWithStyle(display.Footer, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	window.SetContent(container.NewBorder(header, footer, nil, nil, container.NewCenter(body)))
	window.Resize(fyne.NewSize(460, 380))

	view.Render(controls.Snapshot())
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Watch renders every event from events until the channel closes.
func (view *Window) Watch(events <-chan timekeeper.Event) {
	for event := range events {
		state := event.State
		fyne.Do(func() {
			view.Render(state)
		})
	}
}

// Render updates every widget from state. Call it on the UI goroutine.
func (view *Window) Render(state timekeeper.State) {
	view.window.SetTitle(display.Title(state))

	view.clock.Text = display.FormatClock(state.SecondsRemaining)
	view.clock.Color = workColor
	if state.Phase == model.PhaseBreak {
		view.clock.Color = breakColor
	}
	view.clock.Refresh()

	setActive(view.workButton, state.Phase == model.PhaseWork)
	setActive(view.breakButton, state.Phase == model.PhaseBreak)
	for id, button := range view.presetButtons {
		setActive(button, id == state.PresetID)
	}

	view.toggleButton.SetText(display.ToggleLabel(state.Running))
	view.sessionsLabel.SetText(display.SessionsLabel(state.CompletedWorkSessions))
}

func (view *Window) apply(intent func()) {
	intent()
	view.Render(view.controls.Snapshot())
}

func setActive(button *widget.Button, active bool) {
	importance := widget.MediumImportance
	if active {
		importance = widget.HighImportance
	}
	if button.Importance == importance {
		return
	}
	button.Importance = importance
	button.Refresh()
}
