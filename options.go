package rowchase

import (
	"github.com/hupe1980/rowchase/chase"
)

const (
	defaultReadConcurrency = 4
	defaultReadChunkSize   = 8 << 20
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	readLimit        int64
	readConcurrency  int
	readChunkSize    int
	memoryLimit      int64
	validate         bool
	chaseOptions     []chase.Option
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		readConcurrency:  defaultReadConcurrency,
		readChunkSize:    defaultReadChunkSize,
	}
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. If nil is passed,
// metrics are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithReadLimit caps the bandwidth used to read a non-mappable index, in
// bytes per second. 0 means unlimited.
func WithReadLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.readLimit = bytesPerSec
	}
}

// WithReadConcurrency sets how many ranged reads may be in flight while
// loading a non-mappable index. Default: 4.
func WithReadConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.readConcurrency = n
		}
	}
}

// WithReadChunkSize sets the size of each ranged read. Default: 8MiB.
func WithReadChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.readChunkSize = n
		}
	}
}

// WithMemoryLimit rejects non-mappable indexes larger than limit bytes.
// Mapped indexes are paged in by the kernel and are not counted.
func WithMemoryLimit(limit int64) Option {
	return func(o *options) {
		o.memoryLimit = limit
	}
}

// WithValidation runs a full integrity walk before Open returns.
// It touches every row once, so it costs about as much as resolving
// Stride rows per sample.
func WithValidation() Option {
	return func(o *options) {
		o.validate = true
	}
}

// WithChaseOptions sets the options every Chaser created by the Resolver
// starts with.
func WithChaseOptions(opts ...chase.Option) Option {
	return func(o *options) {
		o.chaseOptions = append(o.chaseOptions, opts...)
	}
}
