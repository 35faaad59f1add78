package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generates shell completion scripts",
		Long: `To load completion in bash run

. <(planner completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(planner completion)

zsh, fish and powershell scripts are printed the same way.
`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			w := cmd.OutOrStdout()
			switch shell {
			case "zsh":
				return topLevel.GenZshCompletion(w)
			case "fish":
				return topLevel.GenFishCompletion(w, true)
			case "powershell":
				return topLevel.GenPowerShellCompletionWithDesc(w)
			case "bash":
				return topLevel.GenBashCompletion(w)
			}
			return fmt.Errorf("unsupported shell %q", shell)
		},
	}

	topLevel.AddCommand(cmd)
}
