package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	yo := &options.YearOptions{}
	follow := false

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive week view",
		Example: `
planner ui
planner ui --year 2024 --follow
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := whileRunning(cmd.Context(), yo.Year, func(svc *app.Service) error {
				i := ui.UI{Service: svc, Follow: follow}
				return i.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddYearArg(cmd, yo)
	cmd.Flags().BoolVar(&follow, "follow", false, "Reload when other processes change the planner documents.")
	topLevel.AddCommand(cmd)
}
