package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cozypomodoro/internal/platform"
	"cozypomodoro/internal/ui/timerview"
	"cozypomodoro/internal/ui/tray"
	"cozypomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

func runDesktop(cmd *cobra.Command, options *rootOptions) error {
	logger := newLogger(cmd.ErrOrStderr(), options.verbose)

	lock, err := platform.Acquire(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) && platform.Raise(appName) == nil {
			logger.Info("timer already running, showing its window")
			return nil
		}
		return fmt.Errorf("instance lock: %w", err)
	}
	defer func() {
		_ = lock.Release()
	}()

	rt, err := newRuntime(options, logger, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	fyneApp := app.NewWithID("com.cozypomodoro.app")
	fyneApp.SetIcon(resources.AppIcon())

	view := timerview.New(fyneApp, rt.controller, rt.registry.All())
	go view.Watch(rt.controller.Subscribe(16))

	quit := func() {
		rt.controller.Close()
		fyneApp.Quit()
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:   view.Show,
			OnToggle: rt.controller.ToggleRunning,
			OnReset:  rt.controller.Reset,
			OnSkip:   rt.controller.Skip,
			OnQuit:   quit,
		})
		desktopApp.SetSystemTrayIcon(resources.AppIcon())
		trayManager.SetState(rt.controller.Snapshot())

		trayEvents := rt.controller.Subscribe(16)
		go func() {
			for event := range trayEvents {
				state := event.State
				fyne.Do(func() {
					trayManager.SetState(state)
				})
			}
		}()

		view.Window().SetCloseIntercept(func() {
			view.Window().Hide()
		})
	} else {
		logger.Info("system tray unsupported on this platform")
		view.Window().SetCloseIntercept(quit)
	}

	go lock.Serve(func() {
		fyne.Do(view.Show)
	})

	view.Show()
	fyneApp.Run()
	return nil
}
