// Package pullsub provides the consumer-side streaming-pull engine of a
// managed publish/subscribe messaging client.
//
// The engine maintains a long-lived bidirectional pull stream against a
// broker, keeps it alive with a periodic keepalive ping, converts inbound
// frames into individually leasable messages, and exposes per-message
// acknowledgment operations. Shutdown drains in-flight deliveries with a
// best-effort immediate nack so no lease is silently dropped.
//
// # Quick Start
//
//	queue := pullsub.NewQueue(100)
//	sub, err := pullsub.New("projects/p/subscriptions/s", client, queue, pullsub.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, cancel := context.WithCancel(context.Background())
//	if err := sub.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	go func() {
//	    for msg := range queue.Messages() {
//	        if err := process(msg); err != nil {
//	            _ = msg.Nack(context.Background())
//	            continue
//	        }
//	        _ = msg.Ack(context.Background())
//	    }
//	}()
//
//	// shutdown: cancel first, then join
//	cancel()
//	sub.Done()
//
// # Key Behaviors
//
//   - Stream lifecycle: Connecting → Streaming → (Reconnecting → Connecting) → Terminated
//   - All stream parameters (ack deadline, flow-control caps) are resent on
//     every reconnection, as the broker requires them on the first request of
//     each stream instance
//   - Retryable transport failures reconnect silently; a Cancelled status on
//     stream open is retried up to a bounded budget with fixed backoff before
//     turning fatal
//   - The consumer observes only queue closure at the end of the lease
//     sequence, whether the engine completed cleanly or aborted
//
// # Transport
//
// The underlying RPC transport, connection pooling, and wire encoding live
// behind the types.PullClient capability; this package never touches them.
// Transport failures are classified by their gRPC status codes.
package pullsub
