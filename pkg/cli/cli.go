// Package cli wires the cobra command tree to the command handlers and the TUI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"daylog/pkg/todo"
	"daylog/pkg/ui"
)

// Exit codes returned by Execute.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitUsage    = 2
	ExitNotFound = 3
)

// nowFunc is the clock handed to the store; tests replace it.
var nowFunc = time.Now

// options holds the persistent flags.
type options struct {
	configPath string
	verbose    bool
}

// usageError marks bad arguments so they map to ExitUsage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// NewRootCmd builds the command tree. Without a subcommand the TUI starts.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "daylog",
		Short: "daylog - todo list with deadlines and a work log",
		Long: `daylog keeps a list of tasks, each with an optional deadline and a timeline
of notes and photos.

Deadlines are read from the task text: 오늘, 내일, 모레, "3일 후", "6월 10일까지".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *App) error {
				p := tea.NewProgram(ui.NewModel(app.Store, app.Config, app.Styles), tea.WithAltScreen())
				_, err := p.Run()
				return err
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newToggleCmd(opts),
		newNoteCmd(opts),
		newRemoveCmd(opts),
		newClearCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newBackupCmd(opts),
		newDatabaseCmd(opts),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitCode(err)
	}
	return ExitOK
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var usage *usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usage):
		return ExitUsage
	case errors.Is(err, todo.ErrNotFound):
		return ExitNotFound
	default:
		return ExitError
	}
}

// withApp opens the application for the duration of fn.
func withApp(opts *options, fn func(app *App) error) error {
	app, err := OpenApp(opts.configPath, opts.verbose)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

// withState is withApp without loading the tasks, so it works when the stored
// document is unreadable.
func withState(opts *options, fn func(app *App) error) error {
	app, err := openState(opts.configPath, opts.verbose)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, &usageError{err: fmt.Errorf("invalid task id %q", s)}
	}
	return id, nil
}
