package memres

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Instrumented wraps an Allocator with Prometheus metrics and logging.
// It adds no synchronisation: it is as safe for concurrent use as next.
type Instrumented[A Allocator] struct {
	next   A
	logger log.Logger

	// Metrics.
	operations *prometheus.CounterVec
	bytes      *prometheus.CounterVec
	failures   *prometheus.CounterVec
	inUse      prometheus.Gauge
}

// NewInstrumented wraps next. name labels every metric; reg may be nil to
// skip registration and logger may be nil to discard logs.
func NewInstrumented[A Allocator](next A, name string, logger log.Logger, reg prometheus.Registerer) *Instrumented[A] {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	labels := prometheus.Labels{"allocator": name}
	return &Instrumented[A]{
		next:   next,
		logger: log.With(logger, "allocator", name),
		operations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name:        "memres_allocator_operations_total",
			Help:        "Total number of allocator operations.",
			ConstLabels: labels,
		}, []string{"op"}),
		bytes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name:        "memres_allocator_bytes_total",
			Help:        "Total bytes handed out or taken back by the allocator.",
			ConstLabels: labels,
		}, []string{"op"}),
		failures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name:        "memres_allocator_failures_total",
			Help:        "Total number of failed allocations.",
			ConstLabels: labels,
		}, []string{"op"}),
		inUse: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name:        "memres_allocator_bytes_in_use",
			Help:        "Bytes currently held in live chunks.",
			ConstLabels: labels,
		}),
	}
}

// Unwrap returns the wrapped allocator.
func (i *Instrumented[A]) Unwrap() A {
	return i.next
}

// AutoSize returns the wrapped allocator's AutoSize.
func (i *Instrumented[A]) AutoSize() int {
	return i.next.AutoSize()
}

// Create counts and forwards to the wrapped allocator.
func (i *Instrumented[A]) Create(n int) (Chunk, error) {
	c, err := i.next.Create(n)
	if err != nil {
		i.failures.WithLabelValues("create").Inc()
		level.Warn(i.logger).Log("msg", "allocation failed", "op", "create", "bytes", n, "err", err)
		return c, err
	}
	i.operations.WithLabelValues("create").Inc()
	i.bytes.WithLabelValues("create").Add(float64(c.Len()))
	i.inUse.Add(float64(c.Len()))
	return c, nil
}

// Destroy counts and forwards to the wrapped allocator.
func (i *Instrumented[A]) Destroy(c Chunk) {
	if c.IsNil() {
		return
	}
	i.next.Destroy(c)
	i.operations.WithLabelValues("destroy").Inc()
	i.bytes.WithLabelValues("destroy").Add(float64(c.Len()))
	i.inUse.Sub(float64(c.Len()))
}

// Grow counts and forwards to the wrapped allocator. Failures are logged
// at warn level.
func (i *Instrumented[A]) Grow(c Chunk, n int) (Chunk, error) {
	nc, err := i.next.Grow(c, n)
	if err != nil {
		i.failures.WithLabelValues("grow").Inc()
		level.Warn(i.logger).Log("msg", "allocation failed", "op", "grow", "from", c.Len(), "bytes", n, "err", err)
		return nc, err
	}
	i.operations.WithLabelValues("grow").Inc()
	if delta := nc.Len() - c.Len(); delta > 0 {
		i.bytes.WithLabelValues("grow").Add(float64(delta))
		i.inUse.Add(float64(delta))
	}
	if nc.Addr() != c.Addr() && !c.IsNil() {
		level.Debug(i.logger).Log("msg", "chunk moved on grow", "from", c.Len(), "to", nc.Len())
	}
	return nc, nil
}
