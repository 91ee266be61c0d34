package testing

import (
	"context"
	"io"
	"sync"

	"github.com/arloliu/pullsub/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FakeStream is a hand-fed inbound frame stream implementing types.PullStream.
//
// Tests feed it with Deliver, Fail, and End. Recv honours the context the
// stream was opened under, mirroring a real transport: once the open context
// is cancelled, Recv unblocks with a Canceled status.
type FakeStream struct {
	mu     sync.Mutex
	ctx    context.Context
	frames chan frameResult
}

type frameResult struct {
	resp *types.StreamingPullResponse
	err  error
}

// NewFakeStream creates a new fake stream with a buffered frame backlog.
func NewFakeStream() *FakeStream {
	return &FakeStream{frames: make(chan frameResult, 16)}
}

// Deliver feeds one inbound frame carrying the given envelopes.
func (s *FakeStream) Deliver(envelopes ...*types.ReceivedEnvelope) {
	s.frames <- frameResult{resp: &types.StreamingPullResponse{ReceivedMessages: envelopes}}
}

// Fail makes the next Recv return the given error, ending the stream.
func (s *FakeStream) Fail(err error) {
	s.frames <- frameResult{err: err}
}

// FailCode makes the next Recv return a status error with the given code.
func (s *FakeStream) FailCode(code codes.Code) {
	s.Fail(status.Error(code, "stream failed"))
}

// End makes the next Recv report a clean end of stream.
func (s *FakeStream) End() {
	s.frames <- frameResult{err: io.EOF}
}

// Recv implements types.PullStream.
func (s *FakeStream) Recv() (*types.StreamingPullResponse, error) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	select {
	case r := <-s.frames:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, status.Error(codes.Canceled, "stream context cancelled")
	}
}

func (s *FakeStream) bind(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
}

// AckCall records one Acknowledge invocation.
type AckCall struct {
	Subscription string
	AckIDs       []string
}

// ModAckCall records one ModifyAckDeadline invocation.
type ModAckCall struct {
	Subscription       string
	AckIDs             []string
	AckDeadlineSeconds int32
}

type openResult struct {
	stream *FakeStream
	err    error
}

// FakeClient is a scriptable types.PullClient.
//
// Stream open outcomes are consumed in FIFO order from the script queue
// built with EnqueueStream and EnqueueOpenError. When the script is
// exhausted, StreamingPull hands out an idle stream that never delivers and
// unblocks only on context cancellation, so an engine under test settles
// instead of spinning through reconnects.
//
// Every RPC is recorded and can be inspected with OpenCalls, AckCalls, and
// ModAckCalls. All methods are safe for concurrent use.
type FakeClient struct {
	mu          sync.Mutex
	script      []openResult
	openCalls   []types.StreamingPullRequest
	ackCalls    []AckCall
	modAckCalls []ModAckCall
	ackErr      error
	modAckErr   error
	pings       <-chan struct{}
}

var _ types.PullClient = (*FakeClient)(nil)

// NewFakeClient creates a new fake pull client with an empty script.
func NewFakeClient() *FakeClient {
	return &FakeClient{}
}

// EnqueueStream appends a successful open outcome yielding the given stream.
func (c *FakeClient) EnqueueStream(s *FakeStream) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.script = append(c.script, openResult{stream: s})
}

// EnqueueOpenError appends a failed open outcome with the given error.
func (c *FakeClient) EnqueueOpenError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.script = append(c.script, openResult{err: err})
}

// EnqueueOpenCode appends a failed open outcome with a status error of the
// given code.
func (c *FakeClient) EnqueueOpenCode(code codes.Code) {
	c.EnqueueOpenError(status.Error(code, "open failed"))
}

// SetAckError makes every subsequent Acknowledge call fail with err.
func (c *FakeClient) SetAckError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ackErr = err
}

// SetModAckError makes every subsequent ModifyAckDeadline call fail with err.
func (c *FakeClient) SetModAckError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modAckErr = err
}

// StreamingPull implements types.PullClient.
func (c *FakeClient) StreamingPull(ctx context.Context, req *types.StreamingPullRequest, pings <-chan struct{}) (types.PullStream, error) {
	c.mu.Lock()
	c.openCalls = append(c.openCalls, *req)
	c.pings = pings

	var next openResult
	if len(c.script) > 0 {
		next = c.script[0]
		c.script = c.script[1:]
	} else {
		next = openResult{stream: NewFakeStream()}
	}
	c.mu.Unlock()

	if next.err != nil {
		return nil, next.err
	}

	next.stream.bind(ctx)

	return next.stream, nil
}

// Acknowledge implements types.PullClient.
func (c *FakeClient) Acknowledge(_ context.Context, subscription string, ackIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ackCalls = append(c.ackCalls, AckCall{Subscription: subscription, AckIDs: append([]string(nil), ackIDs...)})

	return c.ackErr
}

// ModifyAckDeadline implements types.PullClient.
func (c *FakeClient) ModifyAckDeadline(_ context.Context, subscription string, ackIDs []string, ackDeadlineSeconds int32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modAckCalls = append(c.modAckCalls, ModAckCall{
		Subscription:       subscription,
		AckIDs:             append([]string(nil), ackIDs...),
		AckDeadlineSeconds: ackDeadlineSeconds,
	})

	return c.modAckErr
}

// OpenCalls returns a copy of every StreamingPull request received so far.
func (c *FakeClient) OpenCalls() []types.StreamingPullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]types.StreamingPullRequest, len(c.openCalls))
	copy(out, c.openCalls)

	return out
}

// AckCalls returns a copy of every Acknowledge call received so far.
func (c *FakeClient) AckCalls() []AckCall {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]AckCall, len(c.ackCalls))
	copy(out, c.ackCalls)

	return out
}

// ModAckCalls returns a copy of every ModifyAckDeadline call received so far.
func (c *FakeClient) ModAckCalls() []ModAckCall {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ModAckCall, len(c.modAckCalls))
	copy(out, c.modAckCalls)

	return out
}

// Pings returns the keepalive channel handed to the most recent stream open.
func (c *FakeClient) Pings() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pings
}
