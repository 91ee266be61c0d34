package pullsub

import (
	"context"
	"fmt"
	"testing"

	pulltest "github.com/arloliu/pullsub/testing"
	"github.com/arloliu/pullsub/types"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newDispatchFixture(t *testing.T, queueSize int) (*Subscriber, *pulltest.FakeClient, *Queue) {
	t.Helper()

	client := pulltest.NewFakeClient()
	queue := NewQueue(queueSize)
	sub, err := New("sub", client, queue, TestConfig(), WithLogger(pulltest.NewTestLogger(t)))
	require.NoError(t, err)

	return sub, client, queue
}

func envelope(id string, attempt int32) *types.ReceivedEnvelope {
	return &types.ReceivedEnvelope{
		AckID:           "ack-" + id,
		DeliveryAttempt: attempt,
		Message:         &types.Message{ID: id, Data: []byte("payload " + id)},
	}
}

func TestDispatchDeliversEveryEnvelope(t *testing.T) {
	sub, client, queue := newDispatchFixture(t, 10)

	envelopes := make([]*types.ReceivedEnvelope, 0, 5)
	for i := 0; i < 5; i++ {
		envelopes = append(envelopes, envelope(fmt.Sprintf("m%d", i), 0))
	}

	nacked := sub.dispatch(t.Context(), envelopes)
	require.Zero(t, nacked)
	require.Empty(t, client.ModAckCalls())

	// Every envelope became exactly one lease handle, in frame order.
	for i := 0; i < 5; i++ {
		msg := <-queue.Messages()
		require.Equal(t, fmt.Sprintf("ack-m%d", i), msg.AckID())
	}
}

func TestDispatchSkipsEnvelopesWithoutMessage(t *testing.T) {
	sub, client, queue := newDispatchFixture(t, 10)

	nacked := sub.dispatch(t.Context(), []*types.ReceivedEnvelope{
		{AckID: "ack-empty"}, // no payload, lease bookkeeping only
		envelope("m1", 0),
	})
	require.Zero(t, nacked)
	require.Empty(t, client.ModAckCalls())

	msg := <-queue.Messages()
	require.Equal(t, "ack-m1", msg.AckID())
	require.Empty(t, queue.ch)
}

func TestDispatchNacksImmediatelyWhenQueueClosed(t *testing.T) {
	sub, client, queue := newDispatchFixture(t, 10)
	queue.Close()

	nacked := sub.dispatch(t.Context(), []*types.ReceivedEnvelope{envelope("m1", 0)})
	require.Equal(t, 1, nacked)

	// Exactly one batched deadline-modify call, to zero seconds.
	calls := client.ModAckCalls()
	require.Len(t, calls, 1)
	require.Equal(t, []string{"ack-m1"}, calls[0].AckIDs)
	require.Equal(t, int32(0), calls[0].AckDeadlineSeconds)
}

func TestDispatchNacksWhenCancellationWinsRace(t *testing.T) {
	sub, client, _ := newDispatchFixture(t, 0) // unbuffered, no consumer

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	nacked := sub.dispatch(ctx, []*types.ReceivedEnvelope{
		envelope("m1", 0),
		envelope("m2", 1),
		envelope("m3", 2),
	})
	require.Equal(t, 3, nacked)

	// All undeliverable leases land in one batched call.
	calls := client.ModAckCalls()
	require.Len(t, calls, 1)
	require.Equal(t, []string{"ack-m1", "ack-m2", "ack-m3"}, calls[0].AckIDs)
}

func TestDispatchDeliveredOrNackedNeverBoth(t *testing.T) {
	// 2 fit in the queue, the rest race a cancelled context: every envelope
	// is delivered or nacked, never both, never neither.
	sub, client, queue := newDispatchFixture(t, 2)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	envelopes := make([]*types.ReceivedEnvelope, 0, 6)
	for i := 0; i < 6; i++ {
		envelopes = append(envelopes, envelope(fmt.Sprintf("m%d", i), 0))
	}

	nacked := sub.dispatch(ctx, envelopes)

	delivered := len(queue.ch)
	require.Equal(t, len(envelopes), delivered+nacked)

	var nackedIDs []string
	for _, call := range client.ModAckCalls() {
		nackedIDs = append(nackedIDs, call.AckIDs...)
	}
	require.Len(t, nackedIDs, nacked)

	seen := make(map[string]bool)
	for range delivered {
		msg := <-queue.Messages()
		require.False(t, seen[msg.AckID()])
		seen[msg.AckID()] = true
	}
	for _, id := range nackedIDs {
		require.False(t, seen[id])
		seen[id] = true
	}
	require.Len(t, seen, len(envelopes))
}

func TestDispatchNackFailureIsNotEscalated(t *testing.T) {
	sub, client, queue := newDispatchFixture(t, 10)
	queue.Close()
	client.SetModAckError(status.Error(codes.Unavailable, "broker down"))

	// The failed best-effort nack is logged only; the count still reports
	// the envelopes it covered.
	nacked := sub.dispatch(t.Context(), []*types.ReceivedEnvelope{envelope("m1", 0)})
	require.Equal(t, 1, nacked)
	require.Len(t, client.ModAckCalls(), 1)
}

func TestDispatchCarriesDeliveryAttempt(t *testing.T) {
	sub, _, queue := newDispatchFixture(t, 2)

	nacked := sub.dispatch(t.Context(), []*types.ReceivedEnvelope{
		envelope("first", 0),
		envelope("redelivered", 4),
	})
	require.Zero(t, nacked)

	first := <-queue.Messages()
	require.Equal(t, 0, first.DeliveryAttempt())

	redelivered := <-queue.Messages()
	require.Equal(t, 4, redelivered.DeliveryAttempt())
}
