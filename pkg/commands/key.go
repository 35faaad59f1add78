package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/glyph"
	"tableflip.dev/planner/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the calendar marks and todo symbols",
		Example: `
planner key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if output.JSON {
				return output.Print(glyph.SortedMarks())
			}
			k := key.Key{}
			err := k.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
