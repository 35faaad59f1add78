package options

import (
	"github.com/spf13/cobra"
)

// AddOptions
type AddOptions struct {
	Message  string
	Backlog  bool
	Priority int
}

func AddAddArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().BoolVarP(&o.Backlog, "backlog", "b", false,
		"Add to the backlog instead of a day.")
	AddPriorityArg(cmd, &o.Priority)
}

// AddPriorityArg registers --priority, 0 (none) to 3 (highest).
func AddPriorityArg(cmd *cobra.Command, p *int) {
	cmd.Flags().IntVarP(p, "priority", "p", 0,
		"Backlog priority, 0 (none) to 3 (highest).")
}
