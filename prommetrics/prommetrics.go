package prommetrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/fcago"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrRegistrationFailed is returned when a metric cannot be registered.
var ErrRegistrationFailed = errors.New("prommetrics: metric registration failed")

const (
	resultOK         = "ok"
	resultError      = "error"
	resultIncomplete = "incomplete"
)

// Options configures a Collector.
type Options struct {
	// Namespace prefixes every metric name.
	Namespace string

	// Registerer receives the collectors. Nil means prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer

	// DurationBuckets are the histogram buckets in seconds.
	DurationBuckets []float64
}

// DefaultOptions holds the defaults used by New.
var DefaultOptions = Options{
	Namespace:       "fcago",
	DurationBuckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
}

// Collector records fcago operations as Prometheus metrics. It is safe for
// concurrent use.
type Collector struct {
	contexts        *prometheus.CounterVec
	contextDuration prometheus.Histogram

	enumerations      *prometheus.CounterVec
	concepts          prometheus.Counter
	enumerateDuration prometheus.Histogram

	covers        *prometheus.CounterVec
	factors       prometheus.Counter
	uncovered     prometheus.Gauge
	coverDuration prometheus.Histogram
}

var _ fcago.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics.
func New(optFns ...func(*Options)) (*Collector, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if len(opts.DurationBuckets) == 0 {
		opts.DurationBuckets = DefaultOptions.DurationBuckets
	}

	ns := opts.Namespace
	histogram := func(name, help string) prometheus.Histogram {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      name,
			Help:      help,
			Buckets:   opts.DurationBuckets,
		})
	}
	results := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      name,
			Help:      help,
		}, []string{"result"})
	}

	c := &Collector{
		contexts:        results("contexts_total", "Context constructions and snapshot reads by result."),
		contextDuration: histogram("context_duration_seconds", "Context construction duration."),

		enumerations: results("enumerations_total", "Concept enumeration runs by result."),
		concepts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "concepts_total",
			Help:      "Concepts produced by successful enumerations.",
		}),
		enumerateDuration: histogram("enumerate_duration_seconds", "Concept enumeration duration."),

		covers: results("covers_total", "Cover factorizations by result."),
		factors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "factors_total",
			Help:      "Factors selected by successful cover runs.",
		}),
		uncovered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "cover_uncovered_cells",
			Help:      "Relation cells left uncovered by the last successful cover run.",
		}),
		coverDuration: histogram("cover_duration_seconds", "Cover factorization duration."),
	}

	for _, col := range []prometheus.Collector{
		c.contexts, c.contextDuration,
		c.enumerations, c.concepts, c.enumerateDuration,
		c.covers, c.factors, c.uncovered, c.coverDuration,
	} {
		if err := opts.Registerer.Register(col); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
		}
	}
	return c, nil
}

// RecordContext implements fcago.MetricsCollector.
func (c *Collector) RecordContext(_, _ int, duration time.Duration, err error) {
	c.contextDuration.Observe(duration.Seconds())
	c.contexts.WithLabelValues(result(err)).Inc()
}

// RecordEnumerate implements fcago.MetricsCollector.
func (c *Collector) RecordEnumerate(concepts int, duration time.Duration, err error) {
	c.enumerateDuration.Observe(duration.Seconds())
	c.enumerations.WithLabelValues(result(err)).Inc()
	if err == nil {
		c.concepts.Add(float64(concepts))
	}
}

// RecordCover implements fcago.MetricsCollector.
func (c *Collector) RecordCover(factors, uncovered int, duration time.Duration, err error) {
	c.coverDuration.Observe(duration.Seconds())
	if err != nil {
		c.covers.WithLabelValues(resultError).Inc()
		return
	}
	c.factors.Add(float64(factors))
	c.uncovered.Set(float64(uncovered))
	if uncovered > 0 {
		c.covers.WithLabelValues(resultIncomplete).Inc()
		return
	}
	c.covers.WithLabelValues(resultOK).Inc()
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultOK
}
