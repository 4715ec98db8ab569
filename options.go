package dagset

// DefaultBatchSize is the number of additional upcoming ids a batched lookup
// carries beyond the one that triggered it, when no override is configured.
// Small enough to keep first-result latency low, large enough to amortize a
// remote round trip.
const DefaultBatchSize = 128

// DefaultResolveConcurrency bounds the parallel batch lookups issued by
// eager resolution (StaticSet.Vertexes).
const DefaultResolveConcurrency = 4

type options struct {
	batchSize          int
	resolveConcurrency int
	logger             *Logger
}

// Option configures StaticSet construction.
//
// Batch sizing is deliberately per-set configuration rather than process
// state, so tests can use tiny batches to exercise the batching path.
type Option func(*options)

func defaultOptions() options {
	return options{
		batchSize:          DefaultBatchSize,
		resolveConcurrency: DefaultResolveConcurrency,
		logger:             NoopLogger(),
	}
}

// WithBatchSize configures how many additional upcoming ids a batched lookup
// may carry beyond the id that triggered it.
// Values <= 0 fall back to DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultBatchSize
		}
		o.batchSize = n
	}
}

// WithResolveConcurrency configures how many batch lookups eager resolution
// may run in parallel. Values <= 0 fall back to DefaultResolveConcurrency.
func WithResolveConcurrency(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultResolveConcurrency
		}
		o.resolveConcurrency = n
	}
}

// WithLogger configures the logger used during resolution.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
