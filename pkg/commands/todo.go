package commands

import (
	"github.com/spf13/cobra"
)

func addTodo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todos of a day",
		Example: `
planner todo add water the plants --on=tomorrow
planner todo list --show-id
planner todo done 0f1e
planner todo migrate --last 1w
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newAddCmd("add"))
	list := newGetCmd("list")
	list.Aliases = []string{"ls"}
	cmd.AddCommand(list)
	cmd.AddCommand(newCompleteCmd("done", false))
	cmd.AddCommand(newCompleteCmd("undo", true))
	cmd.AddCommand(newStrikeCmd("delete"))
	cmd.AddCommand(newMigrateCmd("migrate"))

	topLevel.AddCommand(cmd)
}
