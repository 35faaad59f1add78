package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/runner/backlog"
)

func addBacklog(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "backlog",
		Short: "Manage todos that are not on a day yet",
		Example: `
planner backlog add renew passport --priority 2
planner backlog list --show-id
planner backlog move 9a8b --on=3/14
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newBacklogCmd(backlog.List, "list", "List the backlog", cobra.NoArgs))
	cmd.AddCommand(newBacklogCmd(backlog.Add, "add <text>", "Add a backlog todo", cobra.MinimumNArgs(1)))
	cmd.AddCommand(newBacklogCmd(backlog.Edit, "edit <todo id> <text>", "Change the text of a backlog todo", cobra.MinimumNArgs(2)))
	cmd.AddCommand(newBacklogCmd(backlog.Priority, "priority <todo id> <0-3>", "Change the priority of a backlog todo", cobra.ExactArgs(2)))
	cmd.AddCommand(newBacklogCmd(backlog.Move, "move <todo id>", "Schedule a backlog todo on a day", cobra.ExactArgs(1)))
	cmd.AddCommand(newBacklogCmd(backlog.Delete, "delete <todo id>", "Delete a backlog todo", cobra.ExactArgs(1)))
	cmd.AddCommand(newBacklogCmd(backlog.Reorder, "reorder <todo id>...", "Put backlog todos in the given order", cobra.MinimumNArgs(1)))

	topLevel.AddCommand(cmd)
}

func newBacklogCmd(action backlog.Action, use, short string, args cobra.PositionalArgs) *cobra.Command {
	yo := &options.YearOptions{}
	io := &options.IDOptions{}
	oo := &options.OnOptions{}
	var priority int

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			b := backlog.Backlog{Action: action, Priority: priority, ShowID: io.ShowID, Out: quiet()}
			year := yo.Year
			if action == backlog.Move {
				on, err := oo.Date()
				if err != nil {
					return output.HandleError(err)
				}
				b.Date = model.FormatDate(on)
				if year == 0 {
					year = on.Year()
				}
			}

			err := withYear(cmd.Context(), year, func(svc *app.Service) error {
				b.Store = svc.Store
				var ids []string
				for _, t := range svc.Store.BacklogTodos() {
					ids = append(ids, t.ID)
				}
				switch action {
				case backlog.Add:
					b.Text = strings.Join(args, " ")
				case backlog.Edit, backlog.Priority, backlog.Move, backlog.Delete:
					id, err := expandID(args[0], ids)
					if err != nil {
						return err
					}
					b.ID = id
					if action == backlog.Edit {
						b.Text = strings.Join(args[1:], " ")
					}
					if action == backlog.Priority {
						p, err := strconv.Atoi(args[1])
						if err != nil {
							return fmt.Errorf("priority must be a number: %w", err)
						}
						b.Priority = p
					}
				case backlog.Reorder:
					for _, a := range args {
						id, err := expandID(a, ids)
						if err != nil {
							return err
						}
						b.Order = append(b.Order, id)
					}
				}
				if err := b.Do(cmd.Context()); err != nil {
					return err
				}
				if output.JSON {
					return output.Print(svc.Store.BacklogTodos())
				}
				return nil
			})
			return output.HandleError(err)
		},
	}

	options.AddYearArg(cmd, yo)
	options.AddShowIDArgs(cmd, io)
	switch action {
	case backlog.Add:
		options.AddPriorityArg(cmd, &priority)
	case backlog.Move:
		options.AddOnArgs(cmd, oo)
	}
	return cmd
}
