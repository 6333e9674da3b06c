package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gogpu/ink"
)

// Exit codes.
const (
	exitFailure      = 1
	exitCommandError = 2
)

// exitError carries the process exit code of a failed command.
type exitError struct {
	code    int
	message string
	err     error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.message
}

func (e *exitError) Unwrap() error { return e.err }

func wrapExitError(code int, message string, err error) *exitError {
	return &exitError{code: code, message: message, err: err}
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}

// rootOptions holds the global flags.
type rootOptions struct {
	verbose bool
	format  string
}

var validFormats = []string{"text", "json"}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "inkreplay",
		Short: "Replay pen input against a headless ink engine",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(validFormats, opts.format) {
				return wrapExitError(exitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.format, validFormats), nil)
			}
			if opts.verbose {
				ink.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			ink.SetLogger(nil)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log engine activity to stderr")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "output format (text|json)")

	cmd.AddCommand(newReplayCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))
	return cmd
}
