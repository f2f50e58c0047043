package fcago

import "log/slog"

type options struct {
	name             string
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures context construction.
type Option func(*options)

// WithName sets the display name of the context.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMetricsCollector configures a metrics collector for context construction.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &fcago.BasicMetricsCollector{}
//	c, _ := fcago.New(matrix, objects, attributes, fcago.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Contexts: %d\n", stats.ContextCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := fcago.NewJSONLogger(slog.LevelDebug)
//	c, _ := fcago.New(matrix, objects, attributes, fcago.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
