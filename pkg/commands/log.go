package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/log"
)

func addLog(topLevel *cobra.Command) {
	lo := &options.LogOptions{}
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "View the week, month or year around a day",
		Example: `
planner log
planner log --month
planner log --year --on=2024-1-1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			on, err := oo.Date()
			if err != nil {
				return output.HandleError(err)
			}
			err = withYear(cmd.Context(), on.Year(), func(svc *app.Service) error {
				s := log.Log{
					Store: svc.Store,
					Week:  lo.Week,
					Month: lo.Month,
					Year:  lo.Year,
					On:    on,
				}
				return s.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddLogArgs(cmd, lo)
	options.AddOnArgs(cmd, oo)
	topLevel.AddCommand(cmd)
}
