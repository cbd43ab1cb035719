package telemetry

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// ToolMiddleware wraps every tool handler with execution metrics and a
// per-call log line. Errors pass through untouched.
func ToolMiddleware(metrics *Metrics, logger zerolog.Logger) server.ToolHandlerMiddleware {
	toolLogger := logger.With().Str("component", "tools").Logger()

	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()

			result, err := next(ctx, request)

			duration := time.Since(start)
			status := "success"
			if err != nil {
				status = "error"
			}
			metrics.RecordToolExecution(request.Params.Name, status, duration)

			event := toolLogger.Info()
			if err != nil {
				event = toolLogger.Error().Err(err)
			}
			event.
				Str("tool_name", request.Params.Name).
				Str("status", status).
				Dur("duration", duration).
				Msg("Tool execution completed")

			return result, err
		}
	}
}
