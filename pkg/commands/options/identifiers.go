package options

import (
	"github.com/spf13/cobra"
)

// IDOptions carry the id a command acts on, given as an argument, and
// whether listings print ids.
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each label, event or todo. Any unique prefix of an ID is accepted as input.")
}
