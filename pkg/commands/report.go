package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/glyph"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	var week bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise completed and open todos over recent days",
		Long: `Report lists the todos of each day within the window, completed first.

Examples:
  planner report
  planner report --last 3d
  planner report --last 1mo
  planner report --week`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			since, until, label, err := wo.Range(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withYear(cmd.Context(), until.Year(), func(svc *app.Service) error {
				var result app.ReportResult
				if week {
					result = svc.Week()
					label = "week"
				} else {
					result = svc.Report(since, until)
				}
				if output.JSON {
					return output.Print(result)
				}
				renderReport(color.Output, result, label)
				return nil
			})
			return output.HandleError(err)
		},
	}

	options.AddWindowArg(cmd, wo)
	cmd.Flags().BoolVar(&week, "week", false, "Report the week at the cursor instead of --last.")
	topLevel.AddCommand(cmd)
}

func renderReport(w io.Writer, result app.ReportResult, label string) {
	faint := color.New(color.Faint)
	_, _ = color.New(color.Bold).Fprintf(w, "Report · %s (%s → %s)\n", label,
		result.Since.Format("2006-01-02"), result.Until.Format("2006-01-02"))

	if len(result.Days) == 0 {
		_, _ = faint.Fprintln(w, "  Nothing recorded in this window.")
		_, _ = fmt.Fprintln(w)
		return
	}

	for _, day := range result.Days {
		_, _ = fmt.Fprintf(w, "\n%s %s\n", day.Date, glyph.Mark(day.Mark))
		for _, t := range day.Completed {
			_, _ = faint.Fprintf(w, "  %s %s\n", glyph.Todo(true), glyph.Strike(t.Text))
		}
		for _, t := range day.Open {
			_, _ = fmt.Fprintf(w, "  %s %s\n", glyph.Todo(false), t.Text)
		}
	}

	_, _ = fmt.Fprintln(w)
	_, _ = faint.Fprintf(w, "%d of %d todos completed\n", result.Done, result.Total)
}
