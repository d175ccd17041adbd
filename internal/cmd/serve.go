package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/hireplan-ai/hireplan/internal/gateway"
	"github.com/hireplan-ai/hireplan/internal/health"
	"github.com/hireplan-ai/hireplan/internal/log"
	"github.com/hireplan-ai/hireplan/internal/server"
	"github.com/hireplan-ai/hireplan/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hiring-plan HTTP service",
	Long: `Start the HTTP API for hiring plan generation.

Endpoints:
  POST /analyze-role        - clarification analysis for a role description
  POST /create-hiring-plan  - full plan generation (optional
                              ?clarification_answers= query parameter)
  GET  /tools               - the generation-step catalog
  GET  /health              - aggregated dependency health
  GET  /health/live|ready|startup - Kubernetes probes

The server drains connections gracefully on SIGTERM or SIGINT, failing
readiness probes first so load balancers stop routing new traffic.

Example:
  # Serve with gateways from environment variables
  GEMINI_API_KEY=... hireplan serve

  # Serve with a config file and custom port
  hireplan serve --config hireplan.yaml --port 9090`,
	RunE: runServe,
}

var (
	servePort            string
	serveAddress         string
	serveShutdownTimeout time.Duration
)

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "Address to bind to (overrides config)")
	serveCmd.Flags().DurationVar(&serveShutdownTimeout, "shutdown-timeout", 0, "Maximum time to drain connections on shutdown (overrides config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddress != "" {
		cfg.Server.Address = serveAddress
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}
	if serveShutdownTimeout > 0 {
		cfg.Server.ShutdownTimeoutSeconds = int(serveShutdownTimeout.Seconds())
	}

	registry, err := gateway.NewRegistryFromConfig(cfg)
	if err != nil {
		return err
	}
	defer registry.CloseAll()

	info := version.GetInfo()
	probes := health.NewProbeManager(info.Version)
	probes.AddChecker(health.NewRegistryChecker(registry))
	for _, client := range registry.Clients() {
		probes.AddChecker(health.NewGatewayChecker(client))
	}

	listenAddr := cfg.Server.ListenAddr()
	srv := server.NewServer(server.Deps{
		Probes:   probes,
		Gateways: registry,
		Pipeline: cfg.Pipeline,
		Logger:   log.DefaultLogger(),
	}, server.Config{
		Address:         listenAddr,
		ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second,
		ReadTimeout:     time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:    time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:     time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	})

	fmt.Printf("hireplan %s\n", info.Short())
	fmt.Printf("Listening on: http://%s\n", listenAddr)
	fmt.Printf("Gateways: %v\n\n", registry.List())
	fmt.Printf("Press Ctrl+C to stop the server\n\n")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		fmt.Println("\nInitiating graceful shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second+5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}

		fmt.Println("Server stopped gracefully")
		return nil
	}
}
