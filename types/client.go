package types

import "context"

// PullClient is the RPC capability the subscriber engine consumes.
//
// Implementations wrap the underlying transport and wire encoding; the
// engine never sees either. Errors returned from any method should carry a
// gRPC status so the engine can classify them with status.Code; errors
// without a status are treated as codes.Unknown.
//
// A PullClient must be safe to share freely: every call is independent and
// the engine, lease handles, and the drain-time nack path all invoke it
// concurrently without coordination.
type PullClient interface {
	// StreamingPull opens a bidirectional pull stream.
	//
	// The request parameters accompany the first request of the new stream
	// instance. The pings channel is the outgoing half of the stream: each
	// token received from it must be forwarded to the broker as an empty
	// keepalive request, and the stream's outgoing side should be closed
	// when the channel closes.
	//
	// Parameters:
	//   - ctx: Context bounding the lifetime of the stream
	//   - req: Stream parameters (subscription, deadline, flow-control caps)
	//   - pings: Keepalive token stream; closed exactly once by the engine
	//
	// Returns:
	//   - PullStream: The inbound half of the opened stream
	//   - error: Status error if the stream could not be opened
	StreamingPull(ctx context.Context, req *StreamingPullRequest, pings <-chan struct{}) (PullStream, error)

	// Acknowledge acknowledges the given lease tokens in one call.
	Acknowledge(ctx context.Context, subscription string, ackIDs []string) error

	// ModifyAckDeadline sets the ack deadline of the given lease tokens in
	// one call. Zero seconds makes the messages immediately eligible for
	// redelivery (the nack convention); otherwise the broker-valid range is
	// [10, 600].
	ModifyAckDeadline(ctx context.Context, subscription string, ackIDs []string, ackDeadlineSeconds int32) error
}

// PullStream is the inbound half of an open pull stream.
type PullStream interface {
	// Recv blocks until the next frame arrives. It returns io.EOF when the
	// broker ends the stream cleanly, or a status error on failure. After a
	// non-nil error the stream is dead and Recv must not be called again.
	Recv() (*StreamingPullResponse, error)
}
