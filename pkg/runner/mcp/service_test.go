package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/state"
)

var testNow = time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *int) {
	t.Helper()
	st := state.New(state.Options{
		Logger: log.New(io.Discard),
		Now:    func() time.Time { return testNow },
	})
	if err := st.LoadDataForYear(context.Background(), 2025); err != nil {
		t.Fatal(err)
	}
	saves := 0
	svc := NewService(st, func(context.Context) error {
		saves++
		return nil
	})
	svc.Now = func() time.Time { return testNow }
	return svc, &saves
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-03-09", "2025-03-09", false},
		{" Today ", "2025-03-05", false},
		{"tomorrow", "2025-03-06", false},
		{"", "", true},
		{"3/9", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in, testNow)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseDate(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestServiceMutationsSave(t *testing.T) {
	ctx := context.Background()
	svc, saves := newTestService(t)

	l, err := svc.AddLabel(ctx, "Work", "#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddEvent(ctx, l.ID, "2025-03-05", ""); err != nil {
		t.Fatal(err)
	}
	todo, err := svc.AddTodo(ctx, "2025-03-05", "Write report")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.SetTodoCompleted(ctx, "2025-03-05", todo.ID, true); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetCellMark(ctx, "2025-03-05", "star"); err != nil {
		t.Fatal(err)
	}
	if *saves != 5 {
		t.Fatalf("saves = %d, want one per mutation", *saves)
	}

	day, err := svc.Day("2025-03-05")
	if err != nil {
		t.Fatal(err)
	}
	if day.Weekday != "Wednesday" || day.CellMark != "star" || len(day.Events) != 1 || !day.Todos[0].Completed {
		t.Fatalf("unexpected day %+v", day)
	}

	if _, err := svc.AddTodo(ctx, "2024-12-31", "late"); !errors.Is(err, state.ErrDateOutsideYear) {
		t.Fatalf("expected ErrDateOutsideYear, got %v", err)
	}
	if *saves != 5 {
		t.Fatal("failed mutation saved")
	}
}

func TestServiceWeek(t *testing.T) {
	svc, _ := newTestService(t)
	days, err := svc.Week("")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 7 || days[0].Date != "2025-03-03" || days[6].Date != "2025-03-09" {
		t.Fatalf("unexpected week %v", days)
	}
	days, err = svc.Week("2025-12-31")
	if err != nil {
		t.Fatal(err)
	}
	if days[0].Date != "2025-12-29" || days[6].Date != "2026-01-04" {
		t.Fatalf("week crossing the year = %s..%s", days[0].Date, days[6].Date)
	}
}

func TestMoveBacklogTodo(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	b, err := svc.AddBacklogTodo(ctx, "Call plumber", 2)
	if err != nil {
		t.Fatal(err)
	}
	moved, err := svc.MoveBacklogTodo(ctx, b.ID, "2025-03-07")
	if err != nil {
		t.Fatal(err)
	}
	if moved.OriginalBacklogID != b.ID {
		t.Fatalf("moved = %+v", moved)
	}
	if len(svc.State().Yearly.BacklogTodos) != 0 {
		t.Fatal("backlog not emptied")
	}
}

type toolResponse struct {
	Result struct {
		IsError bool `json:"isError"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"result"`
}

func callTool(t *testing.T, r Runner, name string, args map[string]any) toolResponse {
	t.Helper()
	req, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  map[string]any{"name": name, "arguments": args},
	})
	if err != nil {
		t.Fatal(err)
	}
	msg := r.NewServer().HandleMessage(context.Background(), req)
	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	var resp toolResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	if len(resp.Result.Content) == 0 {
		t.Fatalf("empty tool response %s", raw)
	}
	return resp
}

func TestToolsThroughServer(t *testing.T) {
	svc, _ := newTestService(t)
	r := Runner{Store: svc.Store}

	resp := callTool(t, r, "add_todo", map[string]any{"date": "2025-03-05", "text": "Buy milk"})
	if resp.Result.IsError {
		t.Fatalf("add_todo failed: %s", resp.Result.Content[0].Text)
	}
	var added struct {
		Date string        `json:"date"`
		Todo model.DayTodo `json:"todo"`
	}
	if err := json.Unmarshal([]byte(resp.Result.Content[0].Text), &added); err != nil {
		t.Fatal(err)
	}
	if added.Date != "2025-03-05" || added.Todo.Text != "Buy milk" {
		t.Fatalf("unexpected result %+v", added)
	}
	if got := svc.Store.GetTodosForDate("2025-03-05"); len(got) != 1 {
		t.Fatalf("todo not stored: %v", got)
	}

	resp = callTool(t, r, "add_backlog_todo", map[string]any{"text": "x", "priority": 7})
	if !resp.Result.IsError {
		t.Fatal("out of range priority accepted")
	}
	resp = callTool(t, r, "get_day", map[string]any{"date": "not a date"})
	if !resp.Result.IsError {
		t.Fatal("invalid date accepted")
	}
}
