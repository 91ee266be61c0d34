package pullsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueuePushAndReceive(t *testing.T) {
	queue := NewQueue(2)
	msg := &ReceivedMessage{ackID: "a"}

	require.NoError(t, queue.push(t.Context(), msg))

	got := <-queue.Messages()
	require.Same(t, msg, got)
}

func TestQueuePushAfterClose(t *testing.T) {
	queue := NewQueue(1)
	queue.Close()

	err := queue.push(t.Context(), &ReceivedMessage{ackID: "a"})
	require.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueueCloseIdempotent(t *testing.T) {
	queue := NewQueue(1)

	queue.Close()
	require.NotPanics(t, queue.Close)

	_, ok := <-queue.Messages()
	require.False(t, ok)
}

func TestQueuePushRacesCancellation(t *testing.T) {
	queue := NewQueue(0) // unbuffered, no consumer: push can only unblock via ctx

	ctx, cancel := context.WithCancel(t.Context())
	errCh := make(chan error, 1)
	go func() {
		errCh <- queue.push(ctx, &ReceivedMessage{ackID: "a"})
	}()

	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("push did not observe cancellation")
	}
}

func TestQueueCloseEndsConsumerRange(t *testing.T) {
	queue := NewQueue(4)
	require.NoError(t, queue.push(t.Context(), &ReceivedMessage{ackID: "a"}))
	require.NoError(t, queue.push(t.Context(), &ReceivedMessage{ackID: "b"}))
	queue.Close()

	// Buffered leases drain before the range ends.
	var got []string
	for msg := range queue.Messages() {
		got = append(got, msg.ackID)
	}
	require.Equal(t, []string{"a", "b"}, got)
}
