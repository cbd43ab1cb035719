package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"mercury-mcp/internal/config"
	"mercury-mcp/internal/server"
	"mercury-mcp/internal/telemetry"
)

func main() {
	// .env is optional; deployments usually set the environment directly.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := newLogger(cfg)

	logger.Info().Msg("Starting Mercury MCP server")

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(registry)
	srv := server.New(cfg, logger, metrics, registry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go telemetry.NewSystemMetricsCollector(metrics, logger, 15*time.Second).Start(ctx)

	if cfg.OpsAddr != "" {
		opsServer := &http.Server{
			Addr:    cfg.OpsAddr,
			Handler: srv.OpsHandler(),
		}
		go func() {
			logger.Info().Str("addr", cfg.OpsAddr).Msg("Starting ops server")
			if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("Ops server failed")
			}
		}()
	}

	switch cfg.Transport {
	case config.TransportSSE:
		sseServer := &http.Server{
			Addr:    cfg.SSEAddr,
			Handler: srv.SSEHandler(),
		}
		logger.Info().Str("addr", cfg.SSEAddr).Msg("Starting SSE server")
		if err := sseServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	default:
		if err := srv.ServeStdio(); err != nil {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}
}

// newLogger writes console output to stderr (stdout carries MCP frames on
// the stdio transport) and mirrors the stream to the configured log file.
func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}

	var writer io.Writer = console
	var fileErr error
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fileErr = err
		} else {
			writer = zerolog.MultiLevelWriter(console, file)
		}
	}

	logger := zerolog.New(writer).With().Timestamp().Logger()
	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("path", cfg.LogFile).Msg("Could not open log file, logging to stderr only")
	}
	return logger
}
