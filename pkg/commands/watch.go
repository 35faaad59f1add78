package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/watch"
	"tableflip.dev/planner/pkg/store"
)

func addWatch(topLevel *cobra.Command) {
	yo := &options.YearOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow changes other processes make to the planner documents",
		Example: `
planner watch
planner watch --year 2024
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := whileRunning(cmd.Context(), yo.Year, func(svc *app.Service) error {
				w, ok := svc.Documents.(store.Watcher)
				if !ok {
					return fmt.Errorf("the %s backend can not be watched", svc.Config.Backend())
				}
				n := watch.Watch{
					Store:   svc.Store,
					Watcher: w,
					Logger:  svc.Logger,
				}
				return n.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddYearArg(cmd, yo)
	topLevel.AddCommand(cmd)
}
