package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cozypomodoro/internal/ui/terminal"
)

var errNotTerminal = errors.New("tui needs an interactive terminal")

func newTUICommand(options *rootOptions) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return errNotTerminal
			}

			// The alternate screen owns the terminal, so logs only go to a file.
			var logOutput io.Writer = io.Discard
			if logFile != "" {
				file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return err
				}
				defer file.Close()
				logOutput = file
			}

			rt, err := newRuntime(options, newLogger(logOutput, options.verbose), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			events := rt.controller.Subscribe(16)
			return terminal.Run(rt.controller, rt.registry.All(), events)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
