package types

import "time"

// Message is one published message as delivered by the broker.
type Message struct {
	// ID is the broker-assigned message identifier, unique within the topic.
	ID string

	// Data is the message payload.
	Data []byte

	// Attributes are optional key-value metadata attached by the publisher.
	Attributes map[string]string

	// PublishTime is when the broker accepted the message.
	PublishTime time.Time
}

// ReceivedEnvelope is one delivered-message envelope carried by an inbound
// stream frame: the message itself plus its lease bookkeeping.
type ReceivedEnvelope struct {
	// AckID is the opaque lease token for this delivery. It is unique per
	// delivery attempt and never reused after an ack or nack.
	AckID string

	// DeliveryAttempt is the broker-reported delivery attempt count.
	// Zero means the broker does not track attempts for this subscription.
	DeliveryAttempt int32

	// Message is the delivered message. Envelopes without a message carry
	// only lease bookkeeping and are skipped during dispatch.
	Message *Message
}

// StreamingPullRequest carries the parameters that open a pull stream.
//
// All four fields must accompany the first request of every new stream
// instance; the broker rejects them on later requests of the same instance
// with an InvalidArgument status. The engine therefore resends them in full
// on every reconnection.
type StreamingPullRequest struct {
	// Subscription is the full subscription name to pull from.
	Subscription string

	// StreamAckDeadlineSeconds is the ack deadline to use for the stream.
	// The broker-valid range is [10, 600].
	StreamAckDeadlineSeconds int32

	// MaxOutstandingMessages caps unacknowledged messages in flight for this
	// stream instance. Values <= 0 mean no limit.
	MaxOutstandingMessages int64

	// MaxOutstandingBytes caps unacknowledged bytes in flight for this
	// stream instance. Values <= 0 mean no limit.
	MaxOutstandingBytes int64
}

// StreamingPullResponse is one inbound frame of a pull stream.
type StreamingPullResponse struct {
	// ReceivedMessages are the delivered-message envelopes in this frame.
	ReceivedMessages []*ReceivedEnvelope
}
