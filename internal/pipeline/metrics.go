package pipeline

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Metrics is the small process-wide counters struct exposed by the pipeline
// driver (spec.md §4.G, §9): initialised at pipeline start, torn down at
// close, updated on every channel push/pop.
type Metrics struct {
	ReadSimulationRuns   atomic.Int64
	SimulationRunsBuffer atomic.Int64
	SlicedSimulationRuns atomic.Int64
	SegmentsBuffer       atomic.Int64
	isFinished           atomic.Bool
}

func (m *Metrics) markFinished() {
	m.isFinished.Store(true)
}

// IsFinished reports whether the pipeline has stopped producing segments.
func (m *Metrics) IsFinished() bool {
	return m.isFinished.Load()
}

// logEvery starts a ticker that logs the counters once per interval until
// the returned stop func is called.
func (m *Metrics) logEvery(logger *zap.Logger, interval time.Duration) (stop func()) {
	if logger == nil {
		logger = zap.NewNop()
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				logger.Info("pipeline throughput",
					zap.Int64("readSimulationRuns", m.ReadSimulationRuns.Load()),
					zap.Int64("simulationRunsBuffer", m.SimulationRunsBuffer.Load()),
					zap.Int64("slicedSimulationRuns", m.SlicedSimulationRuns.Load()),
					zap.Int64("segmentsBuffer", m.SegmentsBuffer.Load()),
					zap.Bool("isFinished", m.IsFinished()),
				)
			}
		}
	}()

	return func() { close(done) }
}
