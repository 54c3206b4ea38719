// Package cli defines the cobra commands of the cozypomodoro binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "CozyPomodoro"

var version = "dev" // set via ldflags at build time

type rootOptions struct {
	configPath string
	presetID   string
	verbose    bool
}

// NewRootCommand builds the command tree. The root command opens the desktop timer.
func NewRootCommand() *cobra.Command {
	options := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "cozypomodoro",
		Short: "A cozy focus/break countdown timer",
		Long: `Cozy Pomodoro counts down work and break phases from a fixed set of
presets, sounds an alarm when a phase ends and counts completed work sessions.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop(cmd, options)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&options.configPath, "config", "", "settings file (default: user config dir)")
	flags.StringVar(&options.presetID, "preset", "", "select a preset by id at startup")
	flags.BoolVarP(&options.verbose, "verbose", "v", false, "log debug details, including audio faults")

	rootCmd.AddCommand(newTUICommand(options))
	rootCmd.AddCommand(newPresetsCommand(options))
	return rootCmd
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
