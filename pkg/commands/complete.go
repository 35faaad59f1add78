package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	cmd := newCompleteCmd("complete", false)
	cmd.Aliases = []string{"completed", "done"}
	topLevel.AddCommand(cmd)
}

func newCompleteCmd(use string, undo bool) *cobra.Command {
	io := &options.IDOptions{}
	oo := &options.OnOptions{}

	short := "Complete a todo"
	if undo {
		short = "Mark a completed todo as open again"
	}

	cmd := &cobra.Command{
		Use:   use + " <todo id>",
		Short: short,
		Example: `
planner complete 0f1e2d3c
planner complete 0f1e --on=2025-3-4
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a todo id")
			}
			io.ID = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withDay(cmd.Context(), oo, func(svc *app.Service, date string) error {
				id, err := expandID(io.ID, todoIDs(svc.Store.GetTodosForDate(date)))
				if err != nil {
					return err
				}
				s := complete.Complete{
					Store: svc.Store,
					Date:  date,
					ID:    id,
					Undo:  undo,
				}
				return s.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	return cmd
}
