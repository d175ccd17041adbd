// Package server exposes the hiring-plan API over HTTP: role analysis, plan
// generation, the tool catalog, and Kubernetes-style health probes, with
// graceful shutdown and connection draining for zero-downtime deploys.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hireplan-ai/hireplan/internal/config"
	"github.com/hireplan-ai/hireplan/internal/gateway"
	"github.com/hireplan-ai/hireplan/internal/health"
	"github.com/hireplan-ai/hireplan/internal/log"
)

// Config holds the HTTP server's transport settings.
type Config struct {
	// Address is the listen address (e.g. ":8080", "0.0.0.0:8080").
	Address string

	// ShutdownTimeout is the maximum time to wait for connections to drain.
	// Defaults to 30 seconds.
	ShutdownTimeout time.Duration

	// ReadTimeout bounds reading the entire request. Defaults to 10 seconds.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the response. Plan generation holds the
	// connection open across four gateway calls, so the default is generous:
	// 10 minutes.
	WriteTimeout time.Duration

	// IdleTimeout bounds keep-alive idle time. Defaults to 60 seconds.
	IdleTimeout time.Duration
}

// Deps are the shared collaborators behind the API. The gateway registry is
// the only stateful dependency; every plan request gets its own pipeline
// session on top of it.
type Deps struct {
	Probes   *health.ProbeManager
	Gateways *gateway.Registry
	Pipeline config.PipelineConfig
	Logger   *log.Logger
}

// Server is the hiring-plan HTTP server.
type Server struct {
	httpServer      *http.Server
	probes          *health.ProbeManager
	gateways        *gateway.Registry
	pipelineCfg     config.PipelineConfig
	logger          *log.Logger
	inShutdown      atomic.Bool
	shutdownTimeout time.Duration
}

// NewServer creates the server and wires up all routes.
func NewServer(deps Deps, cfg Config) *Server {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Minute
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}

	s := &Server{
		probes:          deps.Probes,
		gateways:        deps.Gateways,
		pipelineCfg:     deps.Pipeline,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler returns the route table. Exposed separately so tests can drive
// the API through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/health/live", s.handleLiveness)
	mux.HandleFunc("/health/ready", s.handleReadiness)
	mux.HandleFunc("/health/startup", s.handleStartup)

	mux.HandleFunc("/tools", s.handleTools)
	mux.HandleFunc("/analyze-role", s.handleAnalyzeRole)
	mux.HandleFunc("/create-hiring-plan", s.handleCreatePlan)

	return mux
}

// Start runs the server. It blocks until the server stops and returns
// http.ErrServerClosed after a graceful shutdown.
func (s *Server) Start() error {
	s.probes.MarkInitialized()
	s.logger.Info("http server listening", "address", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains the server: readiness probes start failing, keep-alives
// are disabled, and existing connections get up to ShutdownTimeout to
// finish before being closed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.inShutdown.Store(true)
	s.probes.MarkShutdown()
	s.httpServer.SetKeepAlivesEnabled(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	s.logger.Info("http server shutting down", "timeout", s.shutdownTimeout.String())
	return s.httpServer.Shutdown(shutdownCtx)
}

// IsShuttingDown reports whether Shutdown has been called.
func (s *Server) IsShuttingDown() bool {
	return s.inShutdown.Load()
}

func (s *Server) writeProbeResponse(w http.ResponseWriter, result *health.ProbeResult, unhealthyStatus int) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status == health.StatusUnhealthy {
		w.WriteHeader(unhealthyStatus)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.WithError(err).Error("failed to encode probe response")
	}
}

// handleLiveness serves GET /health/live. Always 200 while the process is
// responsive, even during shutdown.
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeProbeResponse(w, s.probes.CheckLiveness(r.Context()), http.StatusOK)
}

// handleReadiness serves GET /health/ready. 503 during shutdown or when a
// dependency check fails.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeProbeResponse(w, s.probes.CheckReadiness(r.Context()), http.StatusServiceUnavailable)
}

// handleStartup serves GET /health/startup. 503 until initialization
// completes.
func (s *Server) handleStartup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeProbeResponse(w, s.probes.CheckStartup(r.Context()), http.StatusServiceUnavailable)
}
