package set

import (
	"io"
	"log/slog"
)

type setOptions struct {
	logger            *slog.Logger
	metrics           *Metrics
	borrowPredecessor bool
}

// Option configures an RBTreeSet at construction.
type Option func(*setOptions)

// WithLogger sets the logger used for debug output (repack summaries,
// rejected node handles). The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *setOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records tree activity in m. Several sets may share one Metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *setOptions) {
		o.metrics = m
	}
}

// WithPredecessorSwap makes removal of a node with two children borrow the
// value of its in-order predecessor instead of its successor.
func WithPredecessorSwap() Option {
	return func(o *setOptions) {
		o.borrowPredecessor = true
	}
}

func buildOptions(opts []Option) setOptions {
	options := setOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(&options)
	}

	return options
}
