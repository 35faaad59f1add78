package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/planner/pkg/model"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerGetStateTool(srv, svc)
	registerLoadYearTool(srv, svc)
	registerGetDayTool(srv, svc)
	registerGetWeekTool(srv, svc)
	registerAddLabelTool(srv, svc)
	registerDeleteLabelTool(srv, svc)
	registerAddEventTool(srv, svc)
	registerDeleteEventTool(srv, svc)
	registerAddBacklogTodoTool(srv, svc)
	registerMoveBacklogTodoTool(srv, svc)
	registerAddTodoTool(srv, svc)
	registerCompleteTodoTool(srv, svc)
	registerDeleteTodoTool(srv, svc)
	registerSetCellMarkTool(srv, svc)
	registerUpdateDiaryTool(srv, svc)
}

func registerGetStateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_state",
		mcp.WithDescription("Return the loaded year: labels, events, backlog, week cursor and palette."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toJSONResult(svc.State())
	})
}

func registerLoadYearTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"load_year",
		mcp.WithDescription("Make a year the resident planner year."),
		mcp.WithNumber("year",
			mcp.Required(),
			mcp.Description("Four digit year to load."),
			mcp.Min(1),
			mcp.Max(9999),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		year, err := request.RequireInt("year")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		st, err := svc.LoadYear(ctx, year)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(st)
	})
}

func registerGetDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_day",
		mcp.WithDescription("Fetch todos, mark, projects, diary and events of one date."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD, today or tomorrow."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := dateArg(svc, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := svc.Day(date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(day)
	})
}

func registerGetWeekTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_week",
		mcp.WithDescription("Fetch the seven days of a week, Monday first."),
		mcp.WithString("date",
			mcp.Description("Any date of the week; defaults to the current week cursor."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date := strings.TrimSpace(request.GetString("date", ""))
		if date != "" {
			var err error
			if date, err = svc.Date(date); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		days, err := svc.Week(date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"days":  days,
			"count": len(days),
		})
	})
}

func registerAddLabelTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_label",
		mcp.WithDescription("Create a label that groups project events."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Label name."),
		),
		mcp.WithString("color",
			mcp.Required(),
			mcp.Description("Hex colour such as #4caf50."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name  string `json:"name"`
			Color string `json:"color"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		l, err := svc.AddLabel(ctx, args.Name, args.Color)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(l)
	})
}

func registerDeleteLabelTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_label",
		mcp.WithDescription("Delete a label and every event attached to it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Label identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		n, err := svc.DeleteLabel(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"id": id, "eventsRemoved": n})
	})
}

func registerAddEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_event",
		mcp.WithDescription("Attach an inclusive date range to a label."),
		mcp.WithString("label_id",
			mcp.Required(),
			mcp.Description("Label the event belongs to."),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("First day, YYYY-MM-DD."),
		),
		mcp.WithString("end",
			mcp.Description("Last day, YYYY-MM-DD; defaults to start."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			LabelID string `json:"label_id"`
			Start   string `json:"start"`
			End     string `json:"end"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		start, err := svc.Date(args.Start)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		end := ""
		if strings.TrimSpace(args.End) != "" {
			if end, err = svc.Date(args.End); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		ev, err := svc.AddEvent(ctx, args.LabelID, start, end)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(ev)
	})
}

func registerDeleteEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_event",
		mcp.WithDescription("Delete a project event."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEvent(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"id": id, "deleted": true})
	})
}

func registerAddBacklogTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_backlog_todo",
		mcp.WithDescription("Add an unscheduled todo to the year's backlog."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Todo text."),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority from 0 (none) to 3 (urgent)."),
			mcp.Min(0),
			mcp.Max(3),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		b, err := svc.AddBacklogTodo(ctx, text, request.GetInt("priority", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(b)
	})
}

func registerMoveBacklogTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_backlog_todo",
		mcp.WithDescription("Schedule a backlog todo on a date, removing it from the backlog."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Backlog todo identifier."),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Target date, YYYY-MM-DD, today or tomorrow."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		date, err := dateArg(svc, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t, err := svc.MoveBacklogTodo(ctx, id, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"date": date, "todo": t})
	})
}

func registerAddTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_todo",
		mcp.WithDescription("Add a todo to a date."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD, today or tomorrow."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Todo text."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := dateArg(svc, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t, err := svc.AddTodo(ctx, date, text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"date": date, "todo": t})
	})
}

func registerCompleteTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"complete_todo",
		mcp.WithDescription("Mark a todo of a date as done, or open again."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date the todo is on."),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Todo identifier."),
		),
		mcp.WithBoolean("completed",
			mcp.Description("New state; defaults to true."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := dateArg(svc, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		done := request.GetBool("completed", true)
		if err := svc.SetTodoCompleted(ctx, date, id, done); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := svc.Day(date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(day)
	})
}

func registerDeleteTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_todo",
		mcp.WithDescription("Delete a todo from a date."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date the todo is on."),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Todo identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := dateArg(svc, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteTodo(ctx, date, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"date": date, "id": id, "deleted": true})
	})
}

func registerSetCellMarkTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_cell_mark",
		mcp.WithDescription("Annotate a calendar date with a mark, or clear it with none."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date to mark."),
		),
		mcp.WithString("mark",
			mcp.Required(),
			mcp.Description("Mark name such as star, circle, triangle, check, cross, heart, or none."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := dateArg(svc, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		mark := strings.TrimSpace(request.GetString("mark", ""))
		if err := svc.SetCellMark(ctx, date, mark); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"date": date, "cellMark": svc.Store.GetCellMark(date)})
	})
}

func registerUpdateDiaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_diary",
		mcp.WithDescription("Replace the keep/problem/try diary of a date."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Diary date."),
		),
		mcp.WithString("keep", mcp.Description("What went well.")),
		mcp.WithString("problem", mcp.Description("What got in the way.")),
		mcp.WithString("try", mcp.Description("What to try next.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := dateArg(svc, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var diary model.Diary
		if err := request.BindArguments(&diary); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if err := svc.UpdateDiary(ctx, date, diary); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"date": date, "diary": diary})
	})
}

func dateArg(svc *Service, request mcp.CallToolRequest) (string, error) {
	raw, err := request.RequireString("date")
	if err != nil {
		return "", err
	}
	return svc.Date(raw)
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
