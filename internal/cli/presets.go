package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"cozypomodoro/internal/core/model"
	"cozypomodoro/internal/ui/display"
)

func newPresetsCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the duration presets and mark the selected one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), options.verbose)
			rt, err := newRuntime(options, logger, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			renderPresets(cmd.OutOrStdout(), rt.registry.All(), rt.controller.Snapshot().PresetID)
			return nil
		},
	}
}

func renderPresets(w io.Writer, presets []model.Preset, selected string) {
	rows := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "PRESET", "DURATIONS", "CYCLE")
	for _, preset := range presets {
		marker := ""
		if preset.ID == selected {
			marker = "*"
		}
		rows.Row(
			marker,
			preset.ID,
			display.PresetButtonLabel(preset),
			display.PresetTooltip(preset),
			(preset.Duration(model.PhaseWork) + preset.Duration(model.PhaseBreak)).String(),
		)
	}
	fmt.Fprintln(w, rows.Render())
}
