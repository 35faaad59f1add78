package options

import (
	"github.com/spf13/cobra"
)

// YearOptions selects the year a command loads. Zero means the last opened
// year.
type YearOptions struct {
	Year int
}

func AddYearArg(cmd *cobra.Command, o *YearOptions) {
	cmd.Flags().IntVar(&o.Year, "year", 0,
		"Year to load, defaults to the last opened year.")
}
