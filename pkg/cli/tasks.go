package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"daylog/pkg/commands"
)

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task; a date in the text becomes its deadline",
		Example: `  daylog add 내일 보고서 제출
  daylog add "6월 10일까지 견적서 보내기"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &usageError{err: errNoText}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *App) error {
				return commands.HandleAddTask(cmd.OutOrStdout(), app.Store, strings.Join(args, " "))
			})
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	var listOpts commands.ListOptions
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks by deadline",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *App) error {
				return commands.HandleList(cmd.OutOrStdout(), app.Store, listOpts)
			})
		},
	}
	cmd.Flags().BoolVar(&listOpts.Pending, "pending", false, "Hide completed tasks")
	cmd.Flags().BoolVarP(&listOpts.Timeline, "timeline", "t", false, "Show each task's log")
	return cmd
}

func newToggleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task done, or reopen it",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(opts, func(app *App) error {
				return commands.HandleToggle(cmd.OutOrStdout(), app.Store, id)
			})
		},
	}
}

func newNoteCmd(opts *options) *cobra.Command {
	var image string
	cmd := &cobra.Command{
		Use:   "note <id> [text]...",
		Short: "Add a note or photo to a task's log",
		Long: `Add a note or photo to a task's log. A date in the note moves the
deadline, e.g. "daylog note 1717200000000 모레로 연기".`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &usageError{err: errNoID}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			return withApp(opts, func(app *App) error {
				return commands.HandleNote(cmd.Context(), cmd.OutOrStdout(), app.Store, id, text, image)
			})
		},
	}
	cmd.Flags().StringVarP(&image, "image", "i", "", "Attach an image file")
	return cmd
}

func newRemoveCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(opts, func(app *App) error {
				return commands.HandleDelete(cmd.OutOrStdout(), cmd.InOrStdin(), app.Store, id, yes)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newClearCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all completed tasks",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *App) error {
				return commands.HandleClearCompleted(cmd.OutOrStdout(), cmd.InOrStdin(), app.Store, yes)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
