package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"tableflip.dev/planner/pkg/runner/watch"
	"tableflip.dev/planner/pkg/state"
	"tableflip.dev/planner/pkg/store"
)

// Run shows the week view of st until the user quits or ctx is done.
// Outside changes reported by opts.Watcher reload the store while the view
// is open.
func Run(ctx context.Context, st *state.Store, logger *log.Logger, opts Options) error {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := NewApp(ctx, st, opts)
	defer a.Close()

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx))

	if opts.Watcher != nil {
		go func() {
			err := watch.Follow(ctx, st, opts.Watcher, logger, func(ev store.Event) {
				p.Send(reloadedMsg{event: ev})
			})
			if err != nil {
				logger.Warn("watch stopped", "err", err)
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
