package server

import (
	"context"
	"net/http"
	"time"

	"github.com/GetPageSpeed/recheck/redos"
)

// Server wraps an http.Server preconfigured with the analyzer router.
type Server struct {
	httpServer *http.Server
	config     ServerConfig
}

// New builds a Server from config, rejecting one whose analyzer settings
// don't validate.
func New(config ServerConfig) (*Server, error) {
	redosCfg, err := config.redosConfig()
	if err != nil {
		return nil, err
	}

	analyzer, err := redos.NewAnalyzer(redosCfg)
	if err != nil {
		return nil, err
	}

	router := NewRouter(analyzer, redosCfg)
	return &Server{
		config: config,
		httpServer: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// ListenAndServe starts the HTTP server, blocking until it stops.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, per net/http.Server's own
// Shutdown contract.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listener address.
func (s *Server) Addr() string {
	return s.config.Addr
}
