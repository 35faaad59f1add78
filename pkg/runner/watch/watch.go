// Package watch keeps a state store in step with documents changed by
// other processes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/state"
	"tableflip.dev/planner/pkg/store"
)

// Follow reloads st whenever w reports a change that touches what st holds,
// and calls onChange after each reload. It returns when ctx is done or the
// watcher closes.
func Follow(ctx context.Context, st *state.Store, w store.Watcher, logger *log.Logger, onChange func(store.Event)) error {
	if logger == nil {
		logger = log.Default()
	}
	ch, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			if err := Apply(ctx, st, ev); err != nil {
				logger.Warn("reload after outside change failed", "document", ev.Document, "err", err)
				continue
			}
			if onChange != nil {
				onChange(ev)
			}
		}
	}
}

// Apply reloads the part of st that ev invalidates. Documents of other
// years are ignored.
func Apply(ctx context.Context, st *state.Store, ev store.Event) error {
	if ev.Type == store.EventCatalogInvalidated {
		if err := st.Init(ctx); err != nil {
			return err
		}
		return reload(ctx, st)
	}
	info := model.ClassifyFile(ev.Document)
	switch info.Kind {
	case model.KindSettings, model.KindMandal:
		return st.Init(ctx)
	case model.KindYear, model.KindMonth:
		if info.Year != st.Year() {
			return nil
		}
		return reload(ctx, st)
	default:
		return nil
	}
}

func reload(ctx context.Context, st *state.Store) error {
	err := st.Reload(ctx)
	if errors.Is(err, state.ErrNoYear) {
		return nil
	}
	return err
}

// Watch prints a line per outside change until ctx is done.
type Watch struct {
	Store   *state.Store
	Watcher store.Watcher
	Logger  *log.Logger
	Out     io.Writer
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("watch: no state store")
	}
	if n.Watcher == nil {
		return errors.New("watch: backend does not support watching")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(out, "watching %d, ctrl-c to stop\n", n.Store.Year())
	return Follow(ctx, n.Store, n.Watcher, n.Logger, func(ev store.Event) {
		name := ev.Document
		if name == "" {
			name = "all documents"
		}
		_, _ = fmt.Fprintf(out, "%s changed (%s)\n", name, ev.Type)
	})
}
