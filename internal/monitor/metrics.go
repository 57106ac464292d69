// internal/monitor/metrics.go
package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barograph_cycles_total",
		Help: "Monitoring cycles completed.",
	})

	linesEmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barograph_log_lines_emitted_total",
		Help: "New kernel log lines published.",
	})

	bootResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barograph_boot_resets_total",
		Help: "Log watermark resets caused by boot id changes.",
	})

	saveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barograph_checkpoint_save_failures_total",
		Help: "Checkpoint writes that failed.",
	})

	publishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barograph_publish_failures_total",
		Help: "Snapshot publishes that failed.",
	})

	logOffsetSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "barograph_last_log_offset_seconds",
		Help: "Current kernel log watermark in seconds since boot.",
	})
)
