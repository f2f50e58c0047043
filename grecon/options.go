package grecon

import "github.com/hupe1980/fcago"

// Order controls the candidate pool order, which decides ties.
type Order int

const (
	// PoolOrder keeps the concepts in the order they were passed in.
	PoolOrder Order = iota
	// CanonicalOrder sorts the concepts with fcago.CompareConcepts before the run.
	CanonicalOrder
)

// Options configures Cover and Factorize.
type Options struct {
	// Parallelism is the number of goroutines scanning candidates per step.
	// Values below 2 scan sequentially. The result does not depend on it.
	Parallelism int

	// Order selects the candidate pool order.
	Order Order

	// Logger receives per-step debug records and a summary. Nil disables logging.
	Logger *fcago.Logger

	// Metrics records enumeration and cover runs. Nil disables metrics.
	Metrics fcago.MetricsCollector
}

// DefaultOptions holds the defaults used by Cover.
var DefaultOptions = Options{
	Parallelism: 1,
	Order:       PoolOrder,
}

func applyOptions(optFns []func(*Options)) Options {
	opts := DefaultOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Logger == nil {
		opts.Logger = fcago.NoopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = fcago.NoopMetricsCollector{}
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return opts
}
