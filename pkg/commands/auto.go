package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/snake"
)

func addAuto(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Pick a command and its flags from prompts, then run it",
		Example: `
planner auto
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			argv, err := snake.New(cmd).Args(topLevel)
			if err != nil {
				return output.HandleError(err)
			}
			_, _ = color.New(color.Faint).Fprintf(cmd.OutOrStdout(), "%s %s\n", topLevel.Name(), strings.Join(quote(argv), " "))
			topLevel.SetArgs(argv)
			return topLevel.ExecuteContext(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

// quote makes the echoed command line copy-pasteable.
func quote(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t'\"") {
			a = fmt.Sprintf("%q", a)
		}
		out[i] = a
	}
	return out
}
