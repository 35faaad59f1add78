package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where documents are stored.",
		Example: `
planner info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withYear(cmd.Context(), 0, func(svc *app.Service) error {
				s := info.Info{
					Config: svc.Config,
					Store:  svc.Store,
				}
				return s.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
