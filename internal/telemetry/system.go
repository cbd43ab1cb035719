package telemetry

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// SystemMetricsCollector refreshes runtime gauges periodically.
type SystemMetricsCollector struct {
	metrics  *Metrics
	logger   zerolog.Logger
	interval time.Duration
}

// NewSystemMetricsCollector creates a new system metrics collector.
func NewSystemMetricsCollector(metrics *Metrics, logger zerolog.Logger, interval time.Duration) *SystemMetricsCollector {
	return &SystemMetricsCollector{
		metrics:  metrics,
		logger:   logger.With().Str("component", "system_metrics").Logger(),
		interval: interval,
	}
}

// Start collects metrics until the context is cancelled.
func (c *SystemMetricsCollector) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info().Dur("interval", c.interval).Msg("Starting system metrics collection")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("Stopping system metrics collection")
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			c.metrics.UpdateSystemMetrics(runtime.NumGoroutine(), m.Alloc)
		}
	}
}
