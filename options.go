package phono

import "log/slog"

type options struct {
	logger *Logger
	chart  *ChartMeta
}

// Option configures inventory construction.
type Option func(*options)

// WithLogger configures structured logging for inventory and tokenizer
// operations. Pass nil to disable logging.
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

// WithChart attaches display-oriented chart metadata to the inventory.
// The engine stores it verbatim and never consults it; see ChartMeta.
func WithChart(chart *ChartMeta) Option {
	return func(o *options) {
		o.chart = chart
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

type deriveOptions struct {
	fullFeatures bool
}

// DeriveOption configures sub-inventory derivation.
type DeriveOption func(*deriveOptions)

// WithFullFeatures disables distinctive-feature minimization: every derived
// segment keeps its complete parent feature specification.
func WithFullFeatures() DeriveOption {
	return func(o *deriveOptions) {
		o.fullFeatures = true
	}
}

func applyDeriveOptions(optFns []DeriveOption) deriveOptions {
	var o deriveOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
