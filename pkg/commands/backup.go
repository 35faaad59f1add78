package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/backup"
)

func addExport(topLevel *cobra.Command) {
	yo := &options.YearOptions{}
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a year to a zip backup",
		Example: `
planner export
planner export --year 2024 --path ~/backups
planner export --path planner.zip
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withYear(cmd.Context(), 0, func(svc *app.Service) error {
				e := backup.Export{
					Store: svc.Store,
					Year:  yo.Year,
					Path:  path,
				}
				return e.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddYearArg(cmd, yo)
	cmd.Flags().StringVarP(&path, "path", "f", ".", "Archive file, or a directory to write backup_<year>.zip into.")
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	yo := &options.YearOptions{}

	cmd := &cobra.Command{
		Use:   "import <archive.zip>",
		Short: "Replace a year with the contents of a zip backup",
		Long: `Import reads a backup written by export and replaces the year it holds.
The year comes from --year, the archive name (backup_2025.zip) or the
documents inside it. Nothing changes if any document fails validation.`,
		Example: `
planner import backup_2025.zip
planner import old.zip --year 2023
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withYear(cmd.Context(), 0, func(svc *app.Service) error {
				i := backup.Import{
					Store: svc.Store,
					Year:  yo.Year,
					Path:  args[0],
				}
				return i.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddYearArg(cmd, yo)
	topLevel.AddCommand(cmd)
}
