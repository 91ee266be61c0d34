package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods are called from internal goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	SubscriberMetrics
	DeliveryMetrics
	KeepaliveMetrics
}

// SubscriberMetrics defines metrics for engine lifecycle operations.
type SubscriberMetrics interface {
	// RecordStateTransition records an engine state transition event.
	RecordStateTransition(from, to State)

	// RecordStreamOpen records a stream open attempt (success or failure).
	RecordStreamOpen(success bool)

	// RecordReconnect records a reconnection triggered by a retryable
	// transport status.
	//
	// Parameters:
	//   - code: Status code string that triggered the reconnect (e.g. "Unavailable")
	RecordReconnect(code string)
}

// DeliveryMetrics defines metrics for message handoff and acknowledgment traffic.
type DeliveryMetrics interface {
	// RecordMessageDelivered records one lease handle delivered to the
	// consumer-facing queue.
	RecordMessageDelivered()

	// RecordImmediateNack records leases nacked at dispatch time because
	// delivery raced shutdown.
	//
	// Parameters:
	//   - count: Number of leases covered by the batched nack
	RecordImmediateNack(count int)

	// RecordAckBatch records one batched acknowledgment RPC.
	//
	// Parameters:
	//   - op: Operation name ("ack" or "modack")
	//   - size: Number of lease tokens in the batch
	//   - success: true if the call succeeded
	RecordAckBatch(op string, size int, success bool)
}

// KeepaliveMetrics defines metrics for the keepalive task.
type KeepaliveMetrics interface {
	// RecordPing records a keepalive tick.
	//
	// Parameters:
	//   - sent: true if the ping token was handed to the stream, false if it
	//     was dropped because the stream was not draining the channel
	RecordPing(sent bool)
}
