package pullsub

import (
	"context"
	"sync"
)

// Queue is the bounded lease queue between the subscriber engine and
// consumer code.
//
// The engine is the sole producer; user code is the sole logical consumer,
// reading from Messages(). The queue is closed exactly once, either when the
// stream ends cleanly or when the engine's context is cancelled, never on a
// transient reconnect. A closed Messages() channel is the only completion
// signal the consumer observes; it does not distinguish graceful completion
// from a fatal transport abort.
//
// The bounded capacity is the consumer-side half of the backpressure model:
// a slow consumer suspends the engine's receive loop on push, which is safe
// because the broker stops sending once its own flow-control caps are hit.
type Queue struct {
	mu     sync.RWMutex
	ch     chan *ReceivedMessage
	closed bool
}

// NewQueue creates a bounded lease queue with the given capacity.
//
// Parameters:
//   - size: Channel buffer size; 0 makes every push rendezvous with a read
//
// Returns:
//   - *Queue: New queue instance
//
// Example:
//
//	queue := pullsub.NewQueue(100)
//	sub, _ := pullsub.New(subscription, client, queue, cfg)
//	_ = sub.Start(ctx)
//	for msg := range queue.Messages() {
//	    _ = msg.Ack(ctx)
//	}
func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan *ReceivedMessage, size)}
}

// Messages returns the receive side of the queue.
//
// The channel is closed when the lease sequence ends; ranging over it is the
// intended consumption pattern.
func (q *Queue) Messages() <-chan *ReceivedMessage {
	return q.ch
}

// push hands one lease handle to the consumer, racing the send against ctx.
//
// Returns ErrQueueClosed if the queue was closed before the send started,
// or ctx.Err() if cancellation won the race. The read lock is held for the
// duration of the send so Close cannot close the channel under an in-flight
// push; pushes blocked on a full channel release the lock by returning when
// ctx is cancelled.
func (q *Queue) push(ctx context.Context, msg *ReceivedMessage) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes the queue. Safe to call multiple times; only the first call
// closes the underlying channel.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.ch)
}
