package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	topLevel.AddCommand(newAddCmd("add"))
}

func newAddCmd(use string) *cobra.Command {
	ao := &options.AddOptions{}
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   use + " <text>",
		Short: "Add a todo to a day or the backlog",
		Example: `
planner add buy milk
planner add call the plumber --on=tomorrow
planner add renew passport --backlog --priority=3
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a todo")
			}
			ao.Message = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withDay(cmd.Context(), oo, func(svc *app.Service, date string) error {
				s := add.Add{
					Store:    svc.Store,
					Date:     date,
					Text:     ao.Message,
					Backlog:  ao.Backlog,
					Priority: ao.Priority,
					ShowID:   io.ShowID,
				}
				return s.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddAddArgs(cmd, ao)
	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	return cmd
}
