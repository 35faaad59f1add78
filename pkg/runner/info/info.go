package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/planner/pkg/state"
	"tableflip.dev/planner/pkg/store"
)

// Info describes where the planner keeps its documents.
type Info struct {
	Config store.Config
	Store  *state.Store
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "PLANNER_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "PLANNER_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("path:", n.Config.BasePath())
	tbl.AddRow("backend:", n.Config.Backend())
	tbl.AddRow("log level:", n.Config.LogLevel())
	tbl.AddRow("previous color:", n.Config.PreviousColor())
	tbl.AddRow("listen:", n.Config.Addr())
	_, _ = fmt.Fprintln(out, tbl)

	if n.Store == nil {
		return fmt.Errorf("failed to open the planner store")
	}

	names, err := n.Store.Documents().ListDocuments(ctx, "")
	if err != nil {
		return err
	}
	sort.Strings(names)
	_, _ = fmt.Fprintf(out, "Documents:\n")
	for _, name := range names {
		_, _ = fmt.Fprintf(out, "  %s\n", name)
	}
	if len(names) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no documents")
	}
	if dirty := n.Store.Dirty().Len(); dirty > 0 {
		_, _ = fmt.Fprintf(out, "Unsaved: %d\n", dirty)
	}
	return nil
}
