package pullsub

import "github.com/arloliu/pullsub/types"

// Option configures a Subscriber with optional dependencies.
type Option func(*subscriberOptions)

// subscriberOptions holds optional Subscriber configuration.
type subscriberOptions struct {
	logger  types.Logger
	metrics types.MetricsCollector
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	logger := logging.NewSlogDefault()
//	sub, _ := pullsub.New(subscription, client, queue, cfg, pullsub.WithLogger(logger))
func WithLogger(logger types.Logger) Option {
	return func(o *subscriberOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	metrics := myPrometheusCollector
//	sub, _ := pullsub.New(subscription, client, queue, cfg, pullsub.WithMetrics(metrics))
func WithMetrics(metrics types.MetricsCollector) Option {
	return func(o *subscriberOptions) {
		o.metrics = metrics
	}
}
