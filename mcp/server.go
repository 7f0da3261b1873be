// Package mcp serves the Guardião da Memória tools over the Model Context Protocol.
package mcp

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/app"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/config"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/health"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/logger"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/mcp/internal/handlers"
)

const (
	httpReadTimeout = 5 * time.Second
	httpIdleTimeout = 120 * time.Second
	healthInterval  = 30 * time.Second
)

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

func registerHandler(s *server.MCPServer, handler toolRegisterer, name string) {
	if err := handler.RegisterTools(s); err != nil {
		log.Fatal().Err(err).Msgf("Failed to register %s tools", name)
	}
}

// NewServer builds an MCP server exposing every tool over a's views.
func NewServer(a *app.App) *server.MCPServer {
	s := server.NewMCPServer(
		a.Config.MCPServerName,
		a.Config.MCPServerVersion,
		server.WithToolCapabilities(true),
	)

	registerHandler(s, handlers.NewSessionHandler(a.Auth, a.Session, a.Router), "session")
	registerHandler(s, handlers.NewReminderHandler(a.Reminders), "reminder")
	registerHandler(s, handlers.NewDiaryHandler(a.Diary), "diary")
	registerHandler(s, handlers.NewContactHandler(a.Contacts), "contact")
	registerHandler(s, handlers.NewChatHandler(a.Assistant, a.Voice), "chat")
	return s
}

// NewHTTPHandler mounts the streamable MCP endpoint at /mcp, Prometheus metrics
// at /metrics and the health probe at /healthz.
func NewHTTPHandler(streamSrv *server.StreamableHTTPServer, h *health.Checker) http.Handler {
	r := mux.NewRouter()
	r.Handle("/mcp", streamSrv)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.Handle("/healthz", h.Handler()).Methods(http.MethodGet)
	return r
}

// RunMCPServer starts the MCP server with the given configuration
func RunMCPServer(cfg *config.Config) error {
	stdio := shouldUseStdio()
	initLogger(cfg, stdio)

	a, err := app.New(cfg)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to build application")
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing application")
		}
	}()
	log.Info().Str("api_url", cfg.APIURL).Msg("Client created successfully")

	s := NewServer(a)

	if stdio {
		// Stdio transport (launched by an MCP host)
		log.Info().Msg("Starting Guardião MCP server (stdio transport)")
		return server.ServeStdio(s)
	}

	log.Info().Str("addr", cfg.MCPAddr).Msg("Starting Guardião MCP server (Streamable HTTP)")

	checker := a.HealthChecker(log.Logger)
	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	go checker.Start(healthCtx, healthInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	shutdownComplete := make(chan struct{})

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)

	srv := &http.Server{
		Addr:         cfg.MCPAddr,
		Handler:      NewHTTPHandler(streamSrv, checker),
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: 0, // streaming responses have no deadline
		IdleTimeout:  httpIdleTimeout,
	}

	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down HTTP server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}

		log.Info().Msg("Shutting down MCP streamable server...")
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("HTTP server error")
		return err
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// initLogger routes logs to stderr in stdio mode so stdout carries only protocol frames.
func initLogger(cfg *config.Config, stdio bool) {
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	w := os.Stdout
	if stdio {
		w = os.Stderr
	}
	log.Logger = logger.NewWithWriter(cfg.MCPServerName, w).With().Caller().Logger()
}

// shouldUseStdio determines whether to use stdio transport based on environment
func shouldUseStdio() bool {
	// Force stdio mode with environment variable
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}

	// Force HTTP mode with environment variable
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}

	// Auto-detect: Use stdio if stdin is not a terminal (launched by another process)
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}

	return false
}
