package options

import (
	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Week  bool
	Month bool
	Year  bool
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.Flags().BoolVarP(&o.Week, "week", "w", false,
		"Show the week log.")
	cmd.Flags().BoolVarP(&o.Month, "month", "m", false,
		"Show the month log.")
	cmd.Flags().BoolVarP(&o.Year, "year", "y", false,
		"Show the year log.")
}
