package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"daylog/pkg/commands"
)

var (
	errNoText = errors.New("nothing to add")
	errNoID   = errors.New("missing task id")
)

func newExportCmd(opts *options) *cobra.Command {
	var (
		output     string
		exportType string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the work log as CSV, or the tasks as JSON or YAML",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *App) error {
				return commands.HandleExportCommand(cmd.OutOrStdout(), app.Store, output, exportType)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `Output file, "-" for stdout (default worklog_<date>.<type>)`)
	cmd.Flags().StringVarP(&exportType, "type", "t", commands.TypeCSV, "Export type (csv, json, yaml)")
	return cmd
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge tasks from a backup file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *App) error {
				return commands.HandleImportCommand(cmd.OutOrStdout(), app.Store, args[0])
			})
		},
	}
}

func newBackupCmd(opts *options) *cobra.Command {
	var (
		output string
		idFlag string
	)
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write all tasks, or one with --id, to a JSON file import can read",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if idFlag != "" {
				parsed, err := parseID(idFlag)
				if err != nil {
					return err
				}
				id = parsed
			}
			return withApp(opts, func(app *App) error {
				return commands.HandleBackup(cmd.OutOrStdout(), app.Store, id, output)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `Output file, "-" for stdout`)
	cmd.Flags().StringVar(&idFlag, "id", "", "Back up a single task")
	return cmd
}

func newDatabaseCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:       "database <info|purge>",
		Aliases:   []string{"db"},
		Short:     "Inspect or purge the stored tasks",
		Args:      exactArgs(1),
		ValidArgs: []string{"info", "purge"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(opts, func(app *App) error {
				return commands.HandleDatabaseCommand(cmd.OutOrStdout(), cmd.InOrStdin(), app.State, args[0], yes)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
