package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/mcp"
	"tableflip.dev/planner/pkg/server"
)

func addServe(topLevel *cobra.Command) {
	yo := &options.YearOptions{}
	var (
		addr    string
		debug   bool
		withMCP bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner as a JSON HTTP API",
		Long: `Serve exposes the planner under /api: state, labels, project events, the
backlog, day todos, marks, diaries and zip export and import. Changes are
saved as each request completes.`,
		Example: `
planner serve
planner serve --addr 0.0.0.0:8765
planner serve --mcp
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := whileRunning(cmd.Context(), yo.Year, func(svc *app.Service) error {
				listen := addr
				if listen == "" {
					listen = svc.Config.Addr()
				}
				if listen == "" {
					listen = "127.0.0.1:8765"
				}
				opts := server.Options{Debug: debug}
				if withMCP {
					opts.MCP = mcp.Runner{Store: svc.Store, Save: mcp.Saver(svc), Version: version}.HTTPHandler()
				}
				host, _, _ := net.SplitHostPort(listen)
				s := server.NewServer(svc, opts)
				return s.Run(cmd.Context(), listen, func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "planner API listening on %s\n", server.ListenURL("http", host, a, "/api"))
					if withMCP {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP listening on %s\n", server.ListenURL("http", host, a, "/mcp"))
					}
				})
			})
			return output.HandleError(err)
		},
	}

	options.AddYearArg(cmd, yo)
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, defaults to the configured addr or 127.0.0.1:8765.")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log every request.")
	cmd.Flags().BoolVar(&withMCP, "mcp", false, "Also serve the Model Context Protocol at /mcp.")
	topLevel.AddCommand(cmd)
}
