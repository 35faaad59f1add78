package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/mcp"
	"tableflip.dev/planner/pkg/server"
)

func addMCP(topLevel *cobra.Command) {
	yo := &options.YearOptions{}
	var (
		transport string
		host      string
		port      int
		path      string
		tls       server.TLS
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes labels, project events, the backlog,
daily todos, marks and diaries through the Model Context Protocol. Every
change a client makes is saved straight away.`,
		Example: `
planner mcp
planner mcp --transport stdio
planner mcp --http-port 0 --year 2024
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			runner := mcp.Runner{
				Name:             "planner",
				Version:          version,
				HTTPEndpointPath: path,
				TLS:              tls,
			}

			switch t := mcp.Transport(strings.ToLower(strings.TrimSpace(transport))); t {
			case "", mcp.TransportHTTP:
				if port < 0 || port > 65535 {
					return output.HandleError(fmt.Errorf("invalid http-port %d", port))
				}
				h := strings.TrimSpace(host)
				if h == "" {
					h = "127.0.0.1"
				}
				scheme := "http"
				if tls.Enabled() {
					scheme = "https"
				}
				runner.Transport = mcp.TransportHTTP
				runner.HTTPListenAddr = net.JoinHostPort(h, strconv.Itoa(port))
				runner.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n", server.ListenURL(scheme, h, a, runner.Endpoint()))
				}
			case mcp.TransportStdio:
				runner.Transport = t
			default:
				return output.HandleError(fmt.Errorf("unsupported transport %q (expected http or stdio)", transport))
			}

			err := whileRunning(cmd.Context(), yo.Year, func(svc *app.Service) error {
				runner.Store = svc.Store
				runner.Save = mcp.Saver(svc)
				return runner.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddYearArg(cmd, yo)
	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "Transport to use: http or stdio.")
	cmd.Flags().StringVar(&host, "http-host", "127.0.0.1", "Interface for the HTTP transport.")
	cmd.Flags().IntVar(&port, "http-port", 8080, "Port for the HTTP transport, 0 picks a free one.")
	cmd.Flags().StringVar(&path, "http-path", "/mcp", "HTTP endpoint path.")
	cmd.Flags().StringVar(&tls.CertFile, "http-tls-cert", "", "TLS certificate file for HTTPS.")
	cmd.Flags().StringVar(&tls.KeyFile, "http-tls-key", "", "TLS private key file for HTTPS.")

	topLevel.AddCommand(cmd)
}
