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

func addMigration(topLevel *cobra.Command) {
	migrationCmd := &cobra.Command{
		Use:   "migration",
		Short: "Inspect and carry forward open todos from earlier days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addMigrationList(migrationCmd)
	migrationCmd.AddCommand(newMigrateCmd("run"))
	topLevel.AddCommand(migrationCmd)
}

func addMigrationList(parent *cobra.Command) {
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open todos left on earlier days within the window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			since, until, label, err := wo.Range(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withYear(cmd.Context(), until.Year(), func(svc *app.Service) error {
				candidates := svc.MigrationCandidates(since, until)
				if output.JSON {
					return output.Print(candidates)
				}
				renderMigrationList(color.Output, candidates, since, until, label)
				return nil
			})
			return output.HandleError(err)
		},
	}

	options.AddWindowArg(cmd, wo)
	parent.AddCommand(cmd)
}

func newMigrateCmd(use string) *cobra.Command {
	wo := &options.WindowOptions{}
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   use,
		Short: "Move open todos from earlier days onto a day",
		Example: `
planner migration run
planner todo migrate --last 3d --on=tomorrow
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			since, _, _, err := wo.Range(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			to, err := oo.Date()
			if err != nil {
				return output.HandleError(err)
			}
			err = withYear(cmd.Context(), to.Year(), func(svc *app.Service) error {
				moved, err := svc.Migrate(since, to)
				if err != nil {
					return err
				}
				if output.JSON {
					return output.Print(map[string]any{"moved": moved, "to": to.Format("2006-01-02")})
				}
				_, _ = fmt.Fprintf(color.Output, "%s migrated %d todos to %s\n", glyph.Moved, moved, to.Format("2006-01-02"))
				return nil
			})
			return output.HandleError(err)
		},
	}

	options.AddWindowArg(cmd, wo)
	options.AddOnArgs(cmd, oo)
	return cmd
}

func renderMigrationList(w io.Writer, candidates []app.MigrationCandidate, since, until time.Time, label string) {
	_, _ = color.New(color.Bold).Fprintf(w, "Migration candidates · last %s (%s → %s)\n",
		label,
		since.Format("2006-01-02"),
		until.Format("2006-01-02"),
	)

	if len(candidates) == 0 {
		_, _ = color.New(color.Faint).Fprintln(w, "  No open todos matched this window.")
		_, _ = fmt.Fprintln(w)
		return
	}

	current := ""
	for _, cand := range candidates {
		if cand.Date != current {
			current = cand.Date
			_, _ = fmt.Fprintf(w, "\n%s\n", current)
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", glyph.Todo(false), cand.Todo.Text)
		_, _ = color.New(color.Faint).Fprintf(w, "      id:%s\n", cand.Todo.ID)
	}

	_, _ = fmt.Fprintln(w)
}
