package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/printers"
)

func addDiary(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	var keep, problem, try string

	cmd := &cobra.Command{
		Use:   "diary",
		Short: "Write or read the keep / problem / try diary of a day",
		Example: `
planner diary
planner diary --keep "shipped the release" --try "smaller PRs"
planner diary --on=yesterday --problem ""
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			flags := cmd.Flags()
			err := withDay(cmd.Context(), oo, func(svc *app.Service, date string) error {
				d := svc.Store.GetDiary(date)
				changed := false
				if flags.Changed("keep") {
					d.Keep, changed = keep, true
				}
				if flags.Changed("problem") {
					d.Problem, changed = problem, true
				}
				if flags.Changed("try") {
					d.Try, changed = try, true
				}
				if changed {
					if err := svc.Store.UpdateDiary(date, d); err != nil {
						return err
					}
				}
				if output.JSON {
					return output.Print(d)
				}
				pp := printers.PrettyPrint{}
				pp.Day(date, svc.Store.GetDay(date))
				return nil
			})
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().StringVar(&keep, "keep", "", "What went well and should continue.")
	cmd.Flags().StringVar(&problem, "problem", "", "What got in the way.")
	cmd.Flags().StringVar(&try, "try", "", "What to try next.")
	topLevel.AddCommand(cmd)
}
