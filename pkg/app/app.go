package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/planner/pkg/dirty"
	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/state"
	"tableflip.dev/planner/pkg/store"
)

// Service wires configuration, persistence and the state store together so
// the CLI, the HTTP server, the MCP runner and the TUI share one setup path.
type Service struct {
	Config    store.Config
	Documents store.Documents
	Logger    *log.Logger
	Store     *state.Store
}

// Options tune Open. Zero values read the configuration from disk and log
// to stderr.
type Options struct {
	Config    store.Config
	Documents store.Documents
	LogOutput io.Writer
	Now       func() time.Time
}

// NewLogger builds the planner's logger at the named level.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "planner",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("app: log level: %w", err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// Open loads configuration, opens the configured backend and reads the
// global documents. Until LoadYear the store holds an empty current year.
func Open(ctx context.Context, opts Options) (*Service, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = store.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	logger, err := NewLogger(opts.LogOutput, cfg.LogLevel())
	if err != nil {
		return nil, err
	}
	policy, err := state.ParsePreviousColorPolicy(cfg.PreviousColor())
	if err != nil {
		return nil, err
	}

	docs := opts.Documents
	if docs == nil {
		docs, err = store.Open(cfg)
		if err != nil {
			return nil, err
		}
	}

	st := state.New(state.Options{
		Documents:     docs,
		Bus:           events.NewBus(logger),
		Dirty:         dirty.New(),
		Logger:        logger,
		Now:           opts.Now,
		PreviousColor: policy,
	})
	if err := st.Init(ctx); err != nil {
		_ = docs.Close()
		return nil, err
	}
	return &Service{
		Config:    cfg,
		Documents: docs,
		Logger:    logger,
		Store:     st,
	}, nil
}

// DefaultYear is the last opened year, or the current year on first run.
func (s *Service) DefaultYear(now time.Time) int {
	if y := s.Store.GetState().Settings.LastOpenedYear; y > 0 {
		return y
	}
	return now.Year()
}

// LoadYear makes year resident. Zero picks DefaultYear.
func (s *Service) LoadYear(ctx context.Context, year int) error {
	if year == 0 {
		year = s.DefaultYear(time.Now())
	}
	return s.Store.LoadDataForYear(ctx, year)
}

// LoadYearOf makes the year holding date resident.
func (s *Service) LoadYearOf(ctx context.Context, date time.Time) error {
	return s.Store.LoadDataForYear(ctx, date.Year())
}

// Save writes every dirty document and logs what failed.
func (s *Service) Save(ctx context.Context) (dirty.Report, error) {
	report, err := s.Store.Save(ctx)
	for name, werr := range report.Failed {
		s.Logger.Error("document not saved", "file", name, "err", werr)
	}
	if err != nil {
		return report, err
	}
	if len(report.Written) > 0 {
		s.Logger.Debug("saved", "files", len(report.Written))
	}
	return report, nil
}

// Close releases the backend. Unsaved changes are reported, not written.
func (s *Service) Close() error {
	if n := s.Store.Dirty().Len(); n > 0 {
		s.Logger.Warn("closing with unsaved documents", "count", n)
	}
	if s.Documents == nil {
		return nil
	}
	return s.Documents.Close()
}

// Do opens the service, makes year resident, runs fn and saves on success.
func Do(ctx context.Context, opts Options, year int, fn func(*Service) error) (err error) {
	svc, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, svc.Close())
	}()
	if err := svc.LoadYear(ctx, year); err != nil {
		return err
	}
	if err := fn(svc); err != nil {
		return err
	}
	_, err = svc.Save(ctx)
	return err
}
