package cli

import (
	"fmt"
	"io"
	"log/slog"

	"cozypomodoro/internal/audio"
	"cozypomodoro/internal/core/model"
	"cozypomodoro/internal/core/timekeeper"
	"cozypomodoro/internal/storage"
)

// runtime is the wired controller with its collaborators.
type runtime struct {
	logger     *slog.Logger
	registry   *model.Registry
	config     model.AppConfig
	store      *storage.FileStore
	players    *audio.Players
	controller *timekeeper.Controller
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func resolveSettingsPath(options *rootOptions) (string, error) {
	if options.configPath != "" {
		return options.configPath, nil
	}
	return storage.DefaultSettingsPath(appName)
}

func openStore(options *rootOptions, logger *slog.Logger) (*storage.FileStore, model.AppConfig, error) {
	path, err := resolveSettingsPath(options)
	if err != nil {
		return nil, model.AppConfig{}, err
	}
	store, config, err := storage.OpenFileStore(path)
	if err != nil {
		// Unreadable settings fall back to defaults and the file is left alone.
		logger.Warn("settings unreadable, using defaults", "path", path, "error", err)
		store = storage.NewReadOnlyFileStore(path, config)
	}
	return store, config, nil
}

// newRuntime loads settings and wires a controller. withAudio false keeps the
// speaker closed, which the presets listing and tests rely on.
func newRuntime(options *rootOptions, logger *slog.Logger, withAudio bool) (*runtime, error) {
	store, config, err := openStore(options, logger)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}

	players := &audio.Players{Cue: audio.Nop{}, Ambient: audio.Nop{}}
	if withAudio {
		players = audio.Setup(config.Audio, logger)
	}

	registry := model.MustDefaultRegistry()
	controller := timekeeper.New(registry, timekeeper.Options{
		TickInterval: config.TickInterval,
		Store:        store,
		Cue:          players.Cue,
		Ambient:      players.Ambient,
		Logger:       logger,
	})
	if options.presetID != "" {
		controller.SelectPreset(options.presetID)
	}

	logger.Debug("timer ready", "settings", store.Path(), "preset", controller.Snapshot().PresetID)
	return &runtime{
		logger:     logger,
		registry:   registry,
		config:     config,
		store:      store,
		players:    players,
		controller: controller,
	}, nil
}

func (rt *runtime) Close() {
	rt.controller.Close()
	if err := rt.players.Close(); err != nil {
		rt.logger.Debug("close audio", "error", err)
	}
}
