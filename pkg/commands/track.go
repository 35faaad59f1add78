package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/glyph"
	"tableflip.dev/planner/pkg/runner/track"
)

func addTrack(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	var mark string

	long := strings.Builder{}
	long.WriteString("Set the mark shown in the calendar cell of a day.\n\nMarks:\n")
	validArgs := []string{"none"}
	for _, g := range glyph.SortedMarks() {
		long.WriteString(fmt.Sprintf("%s %s: %s\n", g.Symbol, g.Key, g.Meaning))
		validArgs = append(validArgs, g.Key)
	}
	long.WriteString("  none: clear the mark\n")

	cmd := &cobra.Command{
		Use:     "track <mark>",
		Aliases: []string{"mark"},
		Short:   "Mark a day in the calendar",
		Long:    long.String(),
		Example: `
planner track star
planner track check --on=yesterday
planner track none
`,
		ValidArgs: validArgs,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a mark")
			}
			mark = strings.ToLower(args[0])
			for _, v := range validArgs {
				if v == mark {
					return nil
				}
			}
			return fmt.Errorf("unknown mark %q, expected one of %s", args[0], strings.Join(validArgs, ", "))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withDay(cmd.Context(), oo, func(svc *app.Service, date string) error {
				t := track.Track{
					Store: svc.Store,
					Date:  date,
					Mark:  mark,
				}
				return t.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	topLevel.AddCommand(cmd)
}
