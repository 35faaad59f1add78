// Package key provides CLI helpers to display the cell mark legend.
package key

import (
	"context"
	"io"

	"tableflip.dev/planner/pkg/printers"
)

// Key prints the glyphs known cell marks are drawn with.
type Key struct {
	Out io.Writer
}

// Do renders the legend.
func (k *Key) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: k.Out}
	pp.NewLine()
	pp.Marks()
	pp.NewLine()
	return nil
}
