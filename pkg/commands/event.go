package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/runner/event"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events"},
		Short:   "Manage project events, date ranges filed under a label",
		Example: `
planner event add 0f1e --start 2025-3-3 --end 2025-3-7
planner event list --on=today
planner event move 9a8b --start 3/10 --end 3/14
planner event delete 9a8b
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newEventCmd(event.List, "list", "List project events", cobra.NoArgs))
	cmd.AddCommand(newEventCmd(event.Add, "add <label id>", "Add a project event", cobra.ExactArgs(1)))
	cmd.AddCommand(newEventCmd(event.Move, "move <event id>", "Change the dates of a project event", cobra.ExactArgs(1)))
	cmd.AddCommand(newEventCmd(event.Delete, "delete <event id>", "Delete a project event", cobra.ExactArgs(1)))

	topLevel.AddCommand(cmd)
}

func newEventCmd(action event.Action, use, short string, args cobra.PositionalArgs) *cobra.Command {
	yo := &options.YearOptions{}
	io := &options.IDOptions{}
	start := &options.OnOptions{}
	end := &options.OnOptions{}
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			e := event.Event{Action: action, ShowID: io.ShowID, Out: quiet()}
			year := yo.Year
			if action == event.Add || action == event.Move {
				s, err := start.GetOn()
				if err != nil {
					return output.HandleError(err)
				}
				if s == nil {
					return output.HandleError(fmt.Errorf("--start is required"))
				}
				e.Start = model.FormatDate(*s)
				if t, err := end.GetOn(); err != nil {
					return output.HandleError(err)
				} else if t != nil {
					e.End = model.FormatDate(*t)
				}
				if year == 0 {
					year = s.Year()
				}
			}
			if t, err := on.GetOn(); err != nil {
				return output.HandleError(err)
			} else if t != nil {
				e.On = model.FormatDate(*t)
				if year == 0 {
					year = t.Year()
				}
			}

			err := withYear(cmd.Context(), year, func(svc *app.Service) error {
				e.Store = svc.Store
				yearly := svc.Store.GetState().Yearly
				switch action {
				case event.Add:
					var ids []string
					for _, l := range yearly.Labels {
						ids = append(ids, l.ID)
					}
					id, err := expandID(args[0], ids)
					if err != nil {
						return err
					}
					e.LabelID = id
				case event.Move, event.Delete:
					var ids []string
					for _, x := range yearly.Events {
						ids = append(ids, x.ID)
					}
					id, err := expandID(args[0], ids)
					if err != nil {
						return err
					}
					e.ID = id
				}
				if err := e.Do(cmd.Context()); err != nil {
					return err
				}
				if output.JSON {
					if e.On != "" {
						return output.Print(svc.Store.EventsOn(e.On))
					}
					return output.Print(svc.Store.GetState().Yearly.Events)
				}
				return nil
			})
			return output.HandleError(err)
		},
	}

	options.AddYearArg(cmd, yo)
	options.AddShowIDArgs(cmd, io)
	switch action {
	case event.Add, event.Move:
		cmd.Flags().StringVar(&start.OnString, "start", "", "First day of the event.")
		cmd.Flags().StringVar(&end.OnString, "end", "", "Last day of the event, defaults to --start.")
	case event.List:
		options.AddOnArgs(cmd, on)
	}
	return cmd
}
