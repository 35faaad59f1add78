package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Last string
}

func AddWindowArg(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Last, "last", timeutil.DefaultWindow,
		"Window to include, for example 3d, 2w or 1mo.")
}

// Range resolves --last to the days it covers, ending today.
func (o *WindowOptions) Range(now time.Time) (since, until time.Time, label string, err error) {
	w, label, err := timeutil.ParseWindow(o.Last)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	since, until = w.Range(now)
	return since, until, label, nil
}
