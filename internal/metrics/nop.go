// Package metrics provides types.MetricsCollector implementations for the
// pullsub library.
package metrics

import "github.com/arloliu/pullsub/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	collector := metrics.NewNop()
//	sub, _ := pullsub.New(subscription, client, queue, cfg, pullsub.WithMetrics(collector))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// SubscriberMetrics implementation

// RecordStateTransition discards the state transition metric.
func (n *NopMetrics) RecordStateTransition(_ /* from */, _ /* to */ types.State) {
	// No-op
}

// RecordStreamOpen discards the stream open metric.
func (n *NopMetrics) RecordStreamOpen(_ /* success */ bool) {
	// No-op
}

// RecordReconnect discards the reconnect metric.
func (n *NopMetrics) RecordReconnect(_ /* code */ string) {
	// No-op
}

// DeliveryMetrics implementation

// RecordMessageDelivered discards the delivery metric.
func (n *NopMetrics) RecordMessageDelivered() {
	// No-op
}

// RecordImmediateNack discards the immediate nack metric.
func (n *NopMetrics) RecordImmediateNack(_ /* count */ int) {
	// No-op
}

// RecordAckBatch discards the ack batch metric.
func (n *NopMetrics) RecordAckBatch(_ /* op */ string, _ /* size */ int, _ /* success */ bool) {
	// No-op
}

// KeepaliveMetrics implementation

// RecordPing discards the ping metric.
func (n *NopMetrics) RecordPing(_ /* sent */ bool) {
	// No-op
}
