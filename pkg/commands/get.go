package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	cmd := newGetCmd("get")
	cmd.Aliases = []string{"day"}
	topLevel.AddCommand(cmd)
}

func newGetCmd(use string) *cobra.Command {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}
	var backlog bool

	cmd := &cobra.Command{
		Use:   use,
		Short: "Show the todos, mark, events and diary of a day",
		Example: `
planner get
planner get --on=yesterday --show-id
planner get --backlog
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withDay(cmd.Context(), oo, func(svc *app.Service, date string) error {
				if output.JSON {
					if backlog {
						return output.Print(svc.Store.BacklogTodos())
					}
					day, err := app.Summarize(svc.Store, date)
					if err != nil {
						return err
					}
					return output.Print(day)
				}
				s := get.Get{
					Store:   svc.Store,
					Date:    date,
					Backlog: backlog,
					ShowID:  io.ShowID,
				}
				return s.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVarP(&backlog, "backlog", "b", false, "Show the backlog instead of a day.")
	return cmd
}
