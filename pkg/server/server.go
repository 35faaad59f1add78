// Package server exposes the planner state over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"tableflip.dev/planner/pkg/app"
)

// Server is the HTTP front of one app service.
type Server struct {
	router  *gin.Engine
	handler *Handler
	logger  *log.Logger
}

// Options tune NewServer.
type Options struct {
	// Debug keeps gin's debug output and request logging.
	Debug bool
	// MCP, when set, is mounted at /mcp next to the JSON API.
	MCP http.Handler
}

// NewServer builds the router for svc. Every mutating request is saved
// before the response is written.
func NewServer(svc *app.Service, opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if opts.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		router: router,
		handler: NewHandler(svc.Store, func(ctx context.Context) error {
			_, err := svc.Save(ctx)
			return err
		}),
		logger: svc.Logger.WithPrefix("http"),
	}
	s.setupRoutes()
	if opts.MCP != nil {
		s.router.Any("/mcp", gin.WrapH(opts.MCP))
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	s.handler.RegisterRoutes(api)
}

// Handler is the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled. onListening, when set, is
// called with the bound address before serving.
func (s *Server) Run(ctx context.Context, addr string, onListening func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if onListening != nil {
		onListening(ln.Addr())
	}
	s.logger.Info("serving", "addr", ln.Addr().String())
	return Serve(ctx, &http.Server{Handler: s.router}, ln, TLS{})
}

// TLS names a certificate and key pair. The zero value serves plain HTTP.
type TLS struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether both files are set.
func (t TLS) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

func (t TLS) validate() error {
	if (t.CertFile == "") != (t.KeyFile == "") {
		return errors.New("server: tls needs both a certificate and a key")
	}
	return nil
}

// Serve runs srv on ln until ctx is cancelled, then shuts it down with a
// short grace period. A clean shutdown returns nil.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, tls TLS) error {
	if err := tls.validate(); err != nil {
		_ = ln.Close()
		return err
	}
	if srv.ReadHeaderTimeout == 0 {
		srv.ReadHeaderTimeout = 10 * time.Second
	}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})
	defer stop()

	var err error
	if tls.Enabled() {
		err = srv.ServeTLS(ln, tls.CertFile, tls.KeyFile)
	} else {
		err = srv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// ListenURL renders the address a client should use for a listener bound
// to host. Wildcard hosts are replaced by the bound IP or loopback.
func ListenURL(scheme, host string, addr net.Addr, path string) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return fmt.Sprintf("%s://%s%s", scheme, addr, path)
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, strconv.Itoa(tcp.Port)), path)
}
