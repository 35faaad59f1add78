package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/server"
	"tableflip.dev/planner/pkg/state"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	Store   *state.Store
	Save    func(ctx context.Context) error
	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	TLS              server.TLS
}

// Saver adapts an app service's Save to Runner.Save.
func Saver(svc *app.Service) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := svc.Save(ctx)
		return err
	}
}

// NewServer builds the MCP server with every planner tool and resource
// registered.
func (r Runner) NewServer() *mcpserver.MCPServer {
	name := r.Name
	if name == "" {
		name = "planner"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := mcpserver.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithInstructions("Read and change the planner: labels, project events, backlog, daily todos, cell marks and diary."),
		mcpserver.WithResourceRecovery(),
		mcpserver.WithRecovery(),
	)

	svc := NewService(r.Store, r.Save)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// HTTPHandler serves the MCP server over the streamable HTTP transport,
// for mounting on another router.
func (r Runner) HTTPHandler() http.Handler {
	return mcpserver.NewStreamableHTTPServer(r.NewServer())
}

// Do serves MCP on the configured transport until ctx is done.
func (r Runner) Do(ctx context.Context) error {
	if r.Store == nil {
		return errors.New("mcp: runner requires a state store")
	}
	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx)
	case TransportStdio:
		return mcpserver.ServeStdio(r.NewServer())
	default:
		return fmt.Errorf("mcp: unknown transport %q", r.Transport)
	}
}

// Endpoint is the URL path MCP is served under.
func (r Runner) Endpoint() string {
	path := strings.TrimSpace(r.HTTPEndpointPath)
	if path == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func (r Runner) serveHTTP(ctx context.Context) error {
	addr := r.HTTPListenAddr
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	mux := http.NewServeMux()
	mux.Handle(r.Endpoint(), r.HTTPHandler())

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}
	return server.Serve(ctx, &http.Server{Handler: mux}, ln, r.TLS)
}
