package tray

import (
	"fmt"

	"cozypomodoro/internal/core/model"
	"cozypomodoro/internal/core/timekeeper"
	"cozypomodoro/internal/ui/display"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow   func()
	OnToggle func()
	OnReset  func()
	OnSkip   func()
	OnQuit   func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	showItem   *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	skipItem   *fyne.MenuItem
	quitItem   *fyne.MenuItem
	callbacks  Callbacks
	state      timekeeper.State
}

// New creates a tray manager with the provided callbacks. A nil app keeps the
// menu off-screen.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.showItem = fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow))
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggle))
	manager.resetItem = fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset))
	manager.skipItem = fyne.NewMenuItem("Take a break", invoke(&manager.callbacks.OnSkip))
	manager.quitItem = fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit))
	manager.quitItem.IsQuit = true

	manager.refreshMenu()
	return manager
}

// SetState updates the status line and action labels.
func (manager *Manager) SetState(state timekeeper.State) {
	manager.state = state
	status := fmt.Sprintf("%s • %s", display.FormatClock(state.SecondsRemaining), display.PhaseLabel(state.Phase))
	if !state.Running {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)

	manager.toggleItem.Label = "Start"
	if state.Running {
		manager.toggleItem.Label = "Pause"
	}
	manager.skipItem.Label = "Take a break"
	if state.Phase == model.PhaseBreak {
		manager.skipItem.Label = "Back to work"
	}
	manager.refreshMenu()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(display.AppTitle,
		manager.statusItem,
		manager.showItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		manager.skipItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
