package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/tui"
)

// ErrNotTerminal is returned when the UI is started without a terminal.
var ErrNotTerminal = errors.New("ui: stdout is not a terminal")

// UI opens the interactive week view over the resident year.
type UI struct {
	Service *app.Service
	// Follow reloads the view when other processes change the documents.
	Follow bool
}

func (u *UI) Do(ctx context.Context) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNotTerminal
	}
	svc := u.Service
	opts := tui.Options{Save: svc.Save}
	if u.Follow {
		if w, ok := svc.Documents.(store.Watcher); ok {
			opts.Watcher = w
		} else {
			svc.Logger.Warn("backend can not be watched", "backend", svc.Config.Backend())
		}
	}
	return tui.Run(ctx, svc.Store, svc.Logger, opts)
}
