package pullsub

import (
	"context"

	"github.com/arloliu/pullsub/types"
)

// ReceivedMessage is one delivered message plus its lease.
//
// The dispatcher creates one handle per inbound envelope. A handle is
// logically consumed by the first Ack or Nack: the lease token is never
// reused after that, and further operations on the same handle are
// meaningless, though the type does not forcibly prevent them.
//
// Ack, Nack, and ModifyAckDeadline are single-token invocations of the
// engine's batched acknowledgment helpers; they never retry internally, and
// any failure is returned verbatim so the caller owns the retry policy for
// that lease.
type ReceivedMessage struct {
	// Message is the delivered message payload and metadata.
	Message *types.Message

	ackID           string
	subscription    string
	client          types.PullClient
	deliveryAttempt int
}

// newReceivedMessage builds a lease handle for one delivered envelope.
func newReceivedMessage(subscription string, client types.PullClient, msg *types.Message, ackID string, deliveryAttempt int) *ReceivedMessage {
	return &ReceivedMessage{
		Message:         msg,
		ackID:           ackID,
		subscription:    subscription,
		client:          client,
		deliveryAttempt: deliveryAttempt,
	}
}

// AckID returns the opaque lease token for this delivery.
func (m *ReceivedMessage) AckID() string {
	return m.ackID
}

// Ack acknowledges this lease. The broker will not redeliver the message.
func (m *ReceivedMessage) Ack(ctx context.Context) error {
	return acknowledge(ctx, m.client, m.subscription, []string{m.ackID})
}

// Nack makes this lease immediately eligible for redelivery.
//
// Equivalent to ModifyAckDeadline(ctx, 0).
func (m *ReceivedMessage) Nack(ctx context.Context) error {
	return nack(ctx, m.client, m.subscription, []string{m.ackID})
}

// ModifyAckDeadline extends or shortens this lease's redelivery window.
//
// Bounds are not validated locally; an out-of-range value surfaces as a
// status error from the call.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//   - ackDeadlineSeconds: New deadline; 0 nacks, broker-valid range is [10, 600]
//
// Returns:
//   - error: Status error from the broker, nil on success
func (m *ReceivedMessage) ModifyAckDeadline(ctx context.Context, ackDeadlineSeconds int32) error {
	return modifyAckDeadline(ctx, m.client, m.subscription, []string{m.ackID}, ackDeadlineSeconds)
}

// DeliveryAttempt returns how many times the broker has attempted delivery
// of this message.
//
// It returns 0 on first delivery (or when the broker does not track
// attempts), and a value >= 1 on redelivery. Consumers can use it to
// implement their own retry or poison-message policy.
func (m *ReceivedMessage) DeliveryAttempt() int {
	return m.deliveryAttempt
}
