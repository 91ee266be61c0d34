package pullsub

import (
	"context"
	"time"

	"github.com/arloliu/pullsub/types"
)

// drainNackTimeout bounds the best-effort nack call issued when delivery
// races shutdown. The call runs on a detached context: the engine context
// is already cancelled at that point, and the nack must be allowed to
// complete anyway.
const drainNackTimeout = 10 * time.Second

// dispatch converts one inbound frame's envelopes into lease handles and
// hands them to the outbound queue.
//
// Every message-bearing envelope is either delivered to the queue or added
// to an immediate-nack batch: never both, never neither. An envelope lands
// in the nack batch when the queue is already closed or when cancellation
// wins the race against the send; this guarantees a lease is never silently
// dropped when shutdown and delivery race.
//
// After the whole frame is processed, the recorded tokens are nacked with a
// single batched deadline-modify call. A failure of that call is logged
// only, never escalated: the broker's own deadline expiry is the
// authoritative fallback redelivery path.
//
// Returns the number of immediately-nacked envelopes.
func (s *Subscriber) dispatch(ctx context.Context, envelopes []*types.ReceivedEnvelope) int {
	var nackTargets []string

	for _, envelope := range envelopes {
		if envelope.Message == nil {
			continue
		}

		s.logger.Debug("message received", "msg_id", envelope.Message.ID)

		msg := newReceivedMessage(
			s.subscription,
			s.client,
			envelope.Message,
			envelope.AckID,
			int(envelope.DeliveryAttempt),
		)

		if err := s.queue.push(ctx, msg); err != nil {
			s.logger.Info("delivery raced shutdown, nacking immediately",
				"msg_id", envelope.Message.ID, "reason", err)
			nackTargets = append(nackTargets, envelope.AckID)

			continue
		}

		s.metrics.RecordMessageDelivered()
	}

	if len(nackTargets) > 0 {
		// Detached context: the engine context is cancelled on this path.
		nackCtx, cancel := context.WithTimeout(context.Background(), drainNackTimeout)
		defer cancel()

		err := nack(nackCtx, s.client, s.subscription, nackTargets)
		if err != nil {
			s.logger.Error("immediate nack failed, messages will be redelivered after the ack deadline",
				"count", len(nackTargets), "error", err)
		}
		s.metrics.RecordImmediateNack(len(nackTargets))
		s.metrics.RecordAckBatch("modack", len(nackTargets), err == nil)
	}

	return len(nackTargets)
}
