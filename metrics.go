package fcago

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    coverCounter   prometheus.Counter
//	    coverHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordCover(factors, uncovered int, duration time.Duration, err error) {
//	    p.coverCounter.Inc()
//	    p.coverHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordContext is called after each context construction.
	RecordContext(objects, attributes int, duration time.Duration, err error)

	// RecordEnumerate is called after each concept enumeration run.
	RecordEnumerate(concepts int, duration time.Duration, err error)

	// RecordCover is called after each cover factorization.
	// factors is the number of selected concepts, uncovered the number of
	// relation cells left uncovered.
	RecordCover(factors, uncovered int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordContext(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordEnumerate(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordCover(int, int, time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ContextCount    atomic.Int64
	ContextErrors   atomic.Int64
	EnumerateCount  atomic.Int64
	EnumerateErrors atomic.Int64
	ConceptsTotal   atomic.Int64
	CoverCount      atomic.Int64
	CoverErrors     atomic.Int64
	CoverIncomplete atomic.Int64
	FactorsTotal    atomic.Int64
	CoverTotalNanos atomic.Int64
	EnumerateNanos  atomic.Int64
	ContextNanos    atomic.Int64
}

// RecordContext implements MetricsCollector.
func (b *BasicMetricsCollector) RecordContext(objects, attributes int, duration time.Duration, err error) {
	b.ContextCount.Add(1)
	b.ContextNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ContextErrors.Add(1)
	}
}

// RecordEnumerate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEnumerate(concepts int, duration time.Duration, err error) {
	b.EnumerateCount.Add(1)
	b.EnumerateNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EnumerateErrors.Add(1)
		return
	}
	b.ConceptsTotal.Add(int64(concepts))
}

// RecordCover implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCover(factors, uncovered int, duration time.Duration, err error) {
	b.CoverCount.Add(1)
	b.CoverTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CoverErrors.Add(1)
		return
	}
	b.FactorsTotal.Add(int64(factors))
	if uncovered > 0 {
		b.CoverIncomplete.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ContextCount:    b.ContextCount.Load(),
		ContextErrors:   b.ContextErrors.Load(),
		EnumerateCount:  b.EnumerateCount.Load(),
		EnumerateErrors: b.EnumerateErrors.Load(),
		ConceptsTotal:   b.ConceptsTotal.Load(),
		CoverCount:      b.CoverCount.Load(),
		CoverErrors:     b.CoverErrors.Load(),
		CoverIncomplete: b.CoverIncomplete.Load(),
		FactorsTotal:    b.FactorsTotal.Load(),
		CoverAvgNanos:   avg(b.CoverTotalNanos.Load(), b.CoverCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ContextCount    int64
	ContextErrors   int64
	EnumerateCount  int64
	EnumerateErrors int64
	ConceptsTotal   int64
	CoverCount      int64
	CoverErrors     int64
	CoverIncomplete int64
	FactorsTotal    int64
	CoverAvgNanos   int64
}
