// Package prometheus exports rowchase metrics through client_golang.
//
//	reg := prometheus.NewRegistry()
//	mc := rcprom.NewCollector(reg, "aligner")
//	r, err := rowchase.Open(ctx, src, rowchase.WithMetricsCollector(mc))
package prometheus

import (
	"time"

	"github.com/hupe1980/rowchase"
	"github.com/prometheus/client_golang/prometheus"
)

var _ rowchase.MetricsCollector = (*Collector)(nil)

// Collector implements rowchase.MetricsCollector with Prometheus metrics.
type Collector struct {
	opens        *prometheus.CounterVec
	openBytes    prometheus.Counter
	resolves     *prometheus.CounterVec
	resolveSteps prometheus.Histogram
	resolveTime  prometheus.Histogram
	validations  *prometheus.CounterVec
}

// NewCollector creates the metrics under namespace and registers them with
// reg. A nil reg means prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		opens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rowchase",
			Name:      "opens_total",
			Help:      "Index loads by outcome and load mode.",
		}, []string{"result", "mode"}),
		openBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rowchase",
			Name:      "open_bytes_total",
			Help:      "Bytes of index data loaded.",
		}),
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rowchase",
			Name:      "resolves_total",
			Help:      "One-shot row resolutions by outcome.",
		}, []string{"result"}),
		resolveSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rowchase",
			Name:      "resolve_steps",
			Help:      "Backward steps taken per resolution.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		resolveTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rowchase",
			Name:      "resolve_duration_seconds",
			Help:      "Wall time per resolution.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rowchase",
			Name:      "validations_total",
			Help:      "Integrity walks by outcome.",
		}, []string{"result"}),
	}
	reg.MustRegister(c.opens, c.openBytes, c.resolves, c.resolveSteps, c.resolveTime, c.validations)
	return c
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordOpen implements rowchase.MetricsCollector.
func (c *Collector) RecordOpen(bytes int64, zeroCopy bool, _ time.Duration, err error) {
	mode := "read"
	if zeroCopy {
		mode = "mmap"
	}
	c.opens.WithLabelValues(result(err), mode).Inc()
	if err == nil {
		c.openBytes.Add(float64(bytes))
	}
}

// RecordResolve implements rowchase.MetricsCollector.
func (c *Collector) RecordResolve(steps uint32, duration time.Duration, err error) {
	c.resolves.WithLabelValues(result(err)).Inc()
	if err == nil {
		c.resolveSteps.Observe(float64(steps))
		c.resolveTime.Observe(duration.Seconds())
	}
}

// RecordValidate implements rowchase.MetricsCollector.
func (c *Collector) RecordValidate(_ uint32, _ time.Duration, err error) {
	c.validations.WithLabelValues(result(err)).Inc()
}
