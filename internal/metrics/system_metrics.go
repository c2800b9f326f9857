package metrics

import (
	"runtime"
	"time"

	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SystemMetrics samples process-level runtime metrics.
type SystemMetrics interface {
	RecordGoroutines()
	RecordMemory()
	StartRecording(interval time.Duration)
	Stop()
}

type systemMetrics struct {
	log          *logger.Logger
	goroutines   prometheus.Gauge
	memoryAlloc  prometheus.Gauge
	memorySystem prometheus.Gauge
	gcRuns       prometheus.Counter
	lastGCCount  uint32
	stopCh       chan struct{}
}

// NewSystemMetrics creates system metrics on the given registry.
func NewSystemMetrics(registry *prometheus.Registry, log *logger.Logger) SystemMetrics {
	goroutines := promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "system_goroutines",
			Help: "Current number of goroutines",
		},
	)

	memoryAlloc := promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "system_memory_alloc_bytes",
			Help: "Currently allocated memory in bytes",
		},
	)

	memorySystem := promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "system_memory_system_bytes",
			Help: "Total memory obtained from system in bytes",
		},
	)

	gcRuns := promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "system_gc_runs_total",
			Help: "Total number of completed GC cycles",
		},
	)

	return &systemMetrics{
		log:          log,
		goroutines:   goroutines,
		memoryAlloc:  memoryAlloc,
		memorySystem: memorySystem,
		gcRuns:       gcRuns,
		stopCh:       make(chan struct{}),
	}
}

// RecordGoroutines samples the current goroutine count.
func (m *systemMetrics) RecordGoroutines() {
	m.goroutines.Set(float64(runtime.NumGoroutine()))
}

// RecordMemory samples the current memory stats.
func (m *systemMetrics) RecordMemory() {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	m.memoryAlloc.Set(float64(stats.Alloc))
	m.memorySystem.Set(float64(stats.Sys))

	if stats.NumGC > m.lastGCCount {
		m.gcRuns.Add(float64(stats.NumGC - m.lastGCCount))
		m.lastGCCount = stats.NumGC
	}
}

// StartRecording samples metrics on the given interval until Stop is called.
func (m *systemMetrics) StartRecording(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.RecordGoroutines()
				m.RecordMemory()
			case <-m.stopCh:
				return
			}
		}
	}()

	m.log.Infow("System metrics recording started", "interval", interval)
}

// Stop stops the recording loop.
func (m *systemMetrics) Stop() {
	close(m.stopCh)
}
