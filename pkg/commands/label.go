package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/label"
)

func addLabel(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "label",
		Aliases: []string{"labels"},
		Short:   "Manage the labels project events are grouped under",
		Example: `
planner label add Work --color "#3366ff"
planner label list --show-id
planner label rename 0f1e Clients
planner label delete 0f1e
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newLabelCmd(label.List, "list", "List labels", cobra.NoArgs))
	cmd.AddCommand(newLabelCmd(label.Add, "add <name>", "Add a label", cobra.MinimumNArgs(1)))
	cmd.AddCommand(newLabelCmd(label.Rename, "rename <label id> <name>", "Rename a label", cobra.MinimumNArgs(2)))
	cmd.AddCommand(newLabelCmd(label.Recolor, "color <label id> <hex>", "Change the colour of a label", cobra.ExactArgs(2)))
	cmd.AddCommand(newLabelCmd(label.Delete, "delete <label id>", "Delete a label and its events", cobra.ExactArgs(1)))
	cmd.AddCommand(newLabelCmd(label.Reorder, "reorder <label id>...", "Put labels in the given order", cobra.MinimumNArgs(1)))

	topLevel.AddCommand(cmd)
}

func newLabelCmd(action label.Action, use, short string, args cobra.PositionalArgs) *cobra.Command {
	yo := &options.YearOptions{}
	io := &options.IDOptions{}
	var colour string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withYear(cmd.Context(), yo.Year, func(svc *app.Service) error {
				l := label.Label{
					Store:  svc.Store,
					Action: action,
					Color:  colour,
					ShowID: io.ShowID,
					Out:    quiet(),
				}
				var ids []string
				for _, x := range svc.Store.GetState().Yearly.Labels {
					ids = append(ids, x.ID)
				}
				switch action {
				case label.Add:
					l.Name = strings.Join(args, " ")
				case label.Rename, label.Recolor, label.Delete:
					id, err := expandID(args[0], ids)
					if err != nil {
						return err
					}
					l.ID = id
					if action == label.Rename {
						l.Name = strings.Join(args[1:], " ")
					}
					if action == label.Recolor {
						l.Color = args[1]
					}
				case label.Reorder:
					for _, a := range args {
						id, err := expandID(a, ids)
						if err != nil {
							return err
						}
						l.Order = append(l.Order, id)
					}
				}
				if err := l.Do(cmd.Context()); err != nil {
					return err
				}
				if output.JSON {
					return output.Print(svc.Store.GetState().Yearly.Labels)
				}
				return nil
			})
			return output.HandleError(err)
		},
	}

	options.AddYearArg(cmd, yo)
	options.AddShowIDArgs(cmd, io)
	if action == label.Add {
		cmd.Flags().StringVarP(&colour, "color", "c", "", `Label colour as hex, example: --color="#ff8800".`)
	}
	return cmd
}
