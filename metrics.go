package rowchase

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metrics/prometheus package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordOpen is called after each Open. bytes is the index size,
	// zeroCopy reports whether the index was mapped rather than read.
	RecordOpen(bytes int64, zeroCopy bool, duration time.Duration, err error)

	// RecordResolve is called after each one-shot resolution.
	// steps is the number of backward steps taken.
	RecordResolve(steps uint32, duration time.Duration, err error)

	// RecordValidate is called after each integrity walk.
	RecordValidate(rows uint32, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(int64, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordResolve(uint32, time.Duration, error)   {}
func (NoopMetricsCollector) RecordValidate(uint32, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	OpenCount         atomic.Int64
	OpenErrors        atomic.Int64
	OpenBytes         atomic.Int64
	OpenZeroCopy      atomic.Int64
	ResolveCount      atomic.Int64
	ResolveErrors     atomic.Int64
	ResolveSteps      atomic.Int64
	ResolveTotalNanos atomic.Int64
	ValidateCount     atomic.Int64
	ValidateErrors    atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(bytes int64, zeroCopy bool, _ time.Duration, err error) {
	b.OpenCount.Add(1)
	if err != nil {
		b.OpenErrors.Add(1)
		return
	}
	b.OpenBytes.Add(bytes)
	if zeroCopy {
		b.OpenZeroCopy.Add(1)
	}
}

// RecordResolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResolve(steps uint32, duration time.Duration, err error) {
	b.ResolveCount.Add(1)
	b.ResolveSteps.Add(int64(steps))
	b.ResolveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ResolveErrors.Add(1)
	}
}

// RecordValidate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordValidate(_ uint32, _ time.Duration, err error) {
	b.ValidateCount.Add(1)
	if err != nil {
		b.ValidateErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		OpenCount:      b.OpenCount.Load(),
		OpenErrors:     b.OpenErrors.Load(),
		OpenBytes:      b.OpenBytes.Load(),
		OpenZeroCopy:   b.OpenZeroCopy.Load(),
		ResolveCount:   b.ResolveCount.Load(),
		ResolveErrors:  b.ResolveErrors.Load(),
		ValidateCount:  b.ValidateCount.Load(),
		ValidateErrors: b.ValidateErrors.Load(),
	}
	if s.ResolveCount > 0 {
		s.ResolveAvgSteps = float64(b.ResolveSteps.Load()) / float64(s.ResolveCount)
		s.ResolveAvgNanos = b.ResolveTotalNanos.Load() / s.ResolveCount
	}
	return s
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	OpenCount       int64
	OpenErrors      int64
	OpenBytes       int64
	OpenZeroCopy    int64
	ResolveCount    int64
	ResolveErrors   int64
	ResolveAvgSteps float64
	ResolveAvgNanos int64
	ValidateCount   int64
	ValidateErrors  int64
}
