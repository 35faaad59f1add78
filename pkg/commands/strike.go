package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/strike"
)

func addStrike(topLevel *cobra.Command) {
	cmd := newStrikeCmd("strike")
	cmd.Aliases = []string{"rm"}
	topLevel.AddCommand(cmd)
}

func newStrikeCmd(use string) *cobra.Command {
	io := &options.IDOptions{}
	oo := &options.OnOptions{}
	var backlog bool

	cmd := &cobra.Command{
		Use:   use + " <todo id>",
		Short: "Delete a todo from a day or the backlog",
		Example: `
planner strike 0f1e2d3c
planner strike 9a8b --backlog
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
				s := strike.Strike{Store: svc.Store, Date: date}
				var ids []string
				if backlog {
					s.Date = ""
					for _, b := range svc.Store.BacklogTodos() {
						ids = append(ids, b.ID)
					}
				} else {
					ids = todoIDs(svc.Store.GetTodosForDate(date))
				}
				id, err := expandID(io.ID, ids)
				if err != nil {
					return err
				}
				s.ID = id
				return s.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().BoolVarP(&backlog, "backlog", "b", false, "Delete from the backlog.")
	return cmd
}
