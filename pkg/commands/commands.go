package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/model"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "planner",
		Short: base.Wrap80("A yearly planner on the command line: labels and project events, a backlog, daily todos, marks and a diary."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddOutputArgs(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addKey(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addComplete(topLevel)
	addStrike(topLevel)
	addTodo(topLevel)
	addTrack(topLevel)
	addDiary(topLevel)
	addLog(topLevel)
	addLabel(topLevel)
	addEvent(topLevel)
	addBacklog(topLevel)
	addReport(topLevel)
	addMigration(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addWatch(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
	addAuto(topLevel)
}

// withYear makes year resident, runs fn and saves.
func withYear(ctx context.Context, year int, fn func(*app.Service) error) error {
	return app.Do(ctx, app.Options{}, year, fn)
}

// whileRunning is withYear for long-running commands: fn runs until ctx is
// cancelled and the final save uses a fresh context so it still happens.
func whileRunning(ctx context.Context, year int, fn func(*app.Service) error) (err error) {
	svc, err := app.Open(ctx, app.Options{})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, svc.Close())
	}()
	if err := svc.LoadYear(ctx, year); err != nil {
		return err
	}
	runErr := fn(svc)
	_, saveErr := svc.Save(context.Background())
	return errors.Join(runErr, saveErr)
}

// withDay resolves --on, makes its year resident, runs fn and saves.
func withDay(ctx context.Context, on *options.OnOptions, fn func(svc *app.Service, date string) error) error {
	day, err := on.Date()
	if err != nil {
		return err
	}
	return withYear(ctx, day.Year(), func(svc *app.Service) error {
		return fn(svc, model.FormatDate(day))
	})
}

// expandID resolves a printed id prefix to the full id it names.
func expandID(prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("an id is required")
	}
	match := ""
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("id %q is ambiguous", prefix)
			}
			match = id
		}
	}
	if match == "" {
		// Let the store report it as not found.
		return prefix, nil
	}
	return match, nil
}

func todoIDs(todos []model.DayTodo) []string {
	ids := make([]string, 0, len(todos))
	for _, t := range todos {
		ids = append(ids, t.ID)
	}
	return ids
}

// quiet silences a runner's table output when --json is printing instead.
func quiet() io.Writer {
	if output.JSON {
		return io.Discard
	}
	return nil
}
