// Package server assembles the MCP server and its operational HTTP surface.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"mercury-mcp/internal/config"
	"mercury-mcp/internal/mercury"
	"mercury-mcp/internal/telemetry"
	"mercury-mcp/internal/tools"
)

// Server wires the Mercury client, the MCP tool surface, and telemetry.
type Server struct {
	cfg      config.Config
	mcp      *mcpserver.MCPServer
	logger   zerolog.Logger
	metrics  *telemetry.Metrics
	gatherer prometheus.Gatherer
}

// New creates a fully wired server. The gatherer backs the /metrics
// endpoint and must be the registry the metrics were registered with.
func New(cfg config.Config, logger zerolog.Logger, metrics *telemetry.Metrics, gatherer prometheus.Gatherer) *Server {
	client := mercury.NewClient(cfg.BaseURL, cfg.APIKey, logger,
		mercury.WithObserver(metrics),
	)

	mcp := mcpserver.NewMCPServer(
		"mercury",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
		mcpserver.WithToolHandlerMiddleware(telemetry.ToolMiddleware(metrics, logger)),
		mcpserver.WithInstructions("Read-only access to Mercury bank data: accounts, cards, transactions, statements, and payment recipients. All tools return plain text."),
	)
	tools.NewHandler(client, logger).Register(mcp)

	return &Server{
		cfg:      cfg,
		mcp:      mcp,
		logger:   logger.With().Str("component", "server").Logger(),
		metrics:  metrics,
		gatherer: gatherer,
	}
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// ServeStdio serves the MCP protocol over stdin/stdout. Blocks until the
// stream closes.
func (s *Server) ServeStdio() error {
	s.logger.Info().Msg("Serving MCP over stdio")
	return mcpserver.ServeStdio(s.mcp)
}

// SSEHandler returns an HTTP handler exposing the MCP server over SSE.
func (s *Server) SSEHandler() http.Handler {
	sse := mcpserver.NewSSEServer(s.mcp,
		mcpserver.WithSSEEndpoint("/sse"),
		mcpserver.WithMessageEndpoint("/message"),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Type", "Cache-Control", "Connection"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/sse", sse.SSEHandler())
	r.Handle("/message", sse.MessageHandler())
	return r
}

// OpsHandler returns the health and metrics HTTP handler.
func (s *Server) OpsHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.HTTPMetricsMiddleware(s.metrics))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{
			"status":    "ok",
			"transport": s.cfg.Transport,
		})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}
