package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerStateResource(srv, svc)
	registerWeekResource(srv, svc)
	registerDayTemplate(srv, svc)
}

func registerStateResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"planner://state",
		"Planner State",
		mcp.WithResourceDescription("The resident year with labels, events, backlog and week cursor."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return encodeResourceJSON(request.Params.URI, svc.State())
	})
}

func registerWeekResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"planner://week",
		"Current Week",
		mcp.WithResourceDescription("The seven days at the week cursor."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		days, err := svc.Week("")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"days":  days,
			"count": len(days),
		})
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"planner://days/{date}",
		"Day",
		mcp.WithTemplateDescription("Everything recorded on one date."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date := templateArg(request.Params.Arguments["date"])
		if date == "" {
			return nil, fmt.Errorf("date is required")
		}
		date, err := svc.Date(date)
		if err != nil {
			return nil, err
		}
		day, err := svc.Day(date)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, day)
	})
}

// templateArg unwraps a URI template variable, which arrives either as a
// string or as a one-element list.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	case []any:
		if len(t) > 0 {
			s, _ := t[0].(string)
			return s
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
