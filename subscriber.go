package pullsub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/arloliu/pullsub/internal/logging"
	"github.com/arloliu/pullsub/internal/metrics"
	"github.com/arloliu/pullsub/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Subscriber is the consumer-side streaming-pull engine.
//
// It owns the stream lifecycle and retry state machine, supervises the
// keepalive task and the receive loop, and feeds lease handles into the
// outbound Queue. The Subscriber is the sole producer of the queue; user
// code is the sole consumer.
//
// Lifecycle:
//   - Create with New()
//   - Call Start(ctx) to spawn the background tasks; it returns immediately
//   - Consume lease handles from the queue's Messages() channel
//   - Cancel ctx to request shutdown, then call Done() to join both tasks
//
// Calling Done() without cancelling the context may block for as long as
// the broker keeps the stream open.
//
// A Subscriber is single-use: after it reaches StateTerminated the lease
// sequence is over, and a new Subscriber must be constructed to resume
// consumption.
//
// Thread Safety:
//   - Start, Done, and State are safe for concurrent use
//   - Retry counters and the stream object are owned exclusively by the
//     receive goroutine; the pinger owns only its ticker, so the two tasks
//     share nothing but the ping channel and the cancellation context
type Subscriber struct {
	cfg          Config
	subscription string
	client       types.PullClient
	queue        *Queue

	logger  types.Logger
	metrics types.MetricsCollector

	// Exactly one ping channel exists per engine instance; the pinger closes
	// it exactly once, when cancellation fires.
	pings chan struct{}

	state      atomic.Int32 // State
	started    atomic.Bool
	pingerDone chan struct{}
	recvDone   chan struct{}
}

// recvResult carries one Recv outcome from the frame reader goroutine to
// the receive loop's select.
type recvResult struct {
	resp *types.StreamingPullResponse
	err  error
}

// New creates a new Subscriber.
//
// Returns a concrete *Subscriber following the "accept interfaces, return
// structs" principle; consumers can define their own narrow interfaces for
// mocking if needed.
//
// Parameters:
//   - subscription: Full subscription name to pull from
//   - client: RPC capability for streaming pull and acknowledgment calls
//   - queue: Bounded outbound lease queue, owned (closed) by the engine
//   - cfg: Engine configuration; zero fields are filled with defaults
//   - opts: Optional configuration (logger, metrics)
//
// Returns:
//   - *Subscriber: Initialized engine instance
//   - error: Validation error if an argument or the configuration is invalid
//
// Example:
//
//	queue := pullsub.NewQueue(100)
//	sub, err := pullsub.New("projects/p/subscriptions/s", client, queue, pullsub.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if err := sub.Start(ctx); err != nil {
//	    return err
//	}
//	for msg := range queue.Messages() {
//	    _ = msg.Ack(ctx)
//	}
//	sub.Done()
func New(subscription string, client types.PullClient, queue *Queue, cfg Config, opts ...Option) (*Subscriber, error) {
	if subscription == "" {
		return nil, ErrSubscriptionRequired
	}
	if client == nil {
		return nil, ErrClientRequired
	}
	if queue == nil {
		return nil, ErrQueueRequired
	}

	SetDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	options := &subscriberOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	s := &Subscriber{
		cfg:          cfg,
		subscription: subscription,
		client:       client,
		queue:        queue,
		logger:       loggerInstance,
		metrics:      metricsCollector,
		pings:        make(chan struct{}, 1),
		pingerDone:   make(chan struct{}),
		recvDone:     make(chan struct{}),
	}
	s.state.Store(int32(StateConnecting))

	return s, nil
}

// Start spawns the keepalive task and the receive/retry task and returns
// immediately.
//
// The provided context is the engine's cancellation signal: cancelling it
// requests a cooperative shutdown, observed at the next suspension point of
// each task.
//
// Parameters:
//   - ctx: Cancellation signal for both background tasks
//
// Returns:
//   - error: ErrAlreadyStarted if Start was already called
func (s *Subscriber) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	go s.runPinger(ctx)
	go s.run(ctx)

	return nil
}

// Done blocks until both background tasks have fully exited: the keepalive
// task first, then the receive/retry task. Idempotent.
//
// Intended usage is to cancel the Start context first and then call Done();
// without cancellation it blocks for as long as the broker keeps the stream
// open.
func (s *Subscriber) Done() {
	<-s.pingerDone
	<-s.recvDone
}

// State returns the engine's current lifecycle state.
func (s *Subscriber) State() State {
	return State(s.state.Load())
}

// transitionState moves the engine to a new lifecycle state.
//
// StateTerminated is sticky: once reached, no further transition applies.
func (s *Subscriber) transitionState(to State) {
	from := s.State()
	if from == StateTerminated || from == to {
		return
	}

	s.state.Store(int32(to))
	s.logger.Debug("state transition", "from", from, "to", to, "subscription", s.subscription)
	s.metrics.RecordStateTransition(from, to)
}

// run is the receive/retry task: the stream lifecycle state machine.
//
// Each iteration opens a fresh stream with the full scalar configuration
// (the broker requires it on the first request of every stream instance),
// then consumes frames until the stream ends, fails, or the engine is
// cancelled. Open and read failures are classified against the configured
// retryable code set; a Cancelled status on open additionally gets a
// bounded fixed-backoff retry budget scoped to the engine lifetime.
func (s *Subscriber) run(ctx context.Context) {
	defer close(s.recvDone)
	defer s.transitionState(StateTerminated)
	// The queue closes exactly once, at task exit: clean completion and fatal
	// abort look identical to the consumer, and transient reconnects never
	// touch it.
	defer s.queue.Close()

	s.logger.Debug("start subscriber", "subscription", s.subscription)

	cancelRetry := 0
	for {
		s.transitionState(StateConnecting)

		req := &types.StreamingPullRequest{
			Subscription:             s.subscription,
			StreamAckDeadlineSeconds: s.cfg.StreamAckDeadlineSeconds,
			MaxOutstandingMessages:   s.cfg.MaxOutstandingMessages,
			MaxOutstandingBytes:      s.cfg.MaxOutstandingBytes,
		}

		stream, err := s.client.StreamingPull(ctx, req, s.pings)
		if err != nil {
			s.metrics.RecordStreamOpen(false)

			code := status.Code(err)
			switch {
			case code == codes.Canceled && cancelRetry < s.cfg.CancelledRetryLimit:
				cancelRetry++
				s.logger.Warn("failed to start streaming, will reconnect",
					"subscription", s.subscription, "error", err, "attempt", cancelRetry)
				s.metrics.RecordReconnect(code.String())

				select {
				case <-ctx.Done():
					return
				case <-time.After(s.cfg.CancelledRetryBackoff):
				}

				continue
			case code == codes.Canceled:
				s.logger.Debug("stop subscriber", "subscription", s.subscription)

				return
			case s.cfg.retryable(code):
				s.logger.Warn("failed to start streaming, will reconnect",
					"subscription", s.subscription, "error", err)
				s.metrics.RecordReconnect(code.String())

				continue
			default:
				s.logger.Error("failed to start streaming, will stop",
					"subscription", s.subscription, "error", err)

				return
			}
		}

		s.metrics.RecordStreamOpen(true)
		s.transitionState(StateStreaming)

		if err := s.receive(ctx, stream); err != nil {
			code := status.Code(err)
			if s.cfg.retryable(code) {
				// Note: unlike the open path, a mid-stream Cancelled gets no
				// bounded-retry budget; it is fatal unless listed in RetryCodes.
				s.logger.Debug("reconnect", "subscription", s.subscription, "error", err)
				s.metrics.RecordReconnect(code.String())
				s.transitionState(StateReconnecting)

				continue
			}

			s.logger.Error("terminated subscriber streaming with error",
				"subscription", s.subscription, "error", err)

			return
		}

		// Clean exit: cancellation fired or the broker ended the stream.
		return
	}
}

// receive consumes frames from one stream instance, racing each read
// against cancellation.
//
// Returns nil on a clean end: cancellation or broker-side stream
// completion. A read error propagates to the retry loop, which reclassifies
// it and reconnects or terminates. Dispatch-internal failures are already
// handled and never propagate.
func (s *Subscriber) receive(ctx context.Context, stream types.PullStream) error {
	s.logger.Debug("start streaming", "subscription", s.subscription)

	frames := make(chan recvResult)
	go func() {
		for {
			resp, err := stream.Recv()
			select {
			case frames <- recvResult{resp: resp, err: err}:
				if err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-frames:
			if r.err != nil {
				if errors.Is(r.err, io.EOF) {
					return nil
				}

				return r.err
			}

			s.dispatch(ctx, r.resp.ReceivedMessages)
		}
	}
}
