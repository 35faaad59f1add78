package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions select machine readable output.
type OutputOptions struct {
	JSON bool
}

// AddOutputArgs registers --json on every command below cmd.
func AddOutputArgs(cmd *cobra.Command, o *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&o.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as {"error": ...} when JSON output is on and
// reports it as handled; otherwise err is returned for cobra to print.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	b, merr := json.Marshal(map[string]string{"error": err.Error()})
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}

// Print writes v as JSON.
func (o *OutputOptions) Print(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(color.Output, string(b))
	return err
}
