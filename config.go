package pullsub

import (
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
)

// Broker-enforced bounds for the stream ack deadline, in seconds.
const (
	MinStreamAckDeadlineSeconds = 10
	MaxStreamAckDeadlineSeconds = 600
)

// DefaultRetryCodes returns the default set of transport status codes that
// trigger a silent reconnect.
//
// codes.Canceled is deliberately absent: stream-open cancellations have
// their own bounded-retry rule (see Config.CancelledRetryLimit), and a
// mid-stream cancellation terminates the engine.
//
// Returns:
//   - []codes.Code: Fresh slice safe for the caller to modify
func DefaultRetryCodes() []codes.Code {
	return []codes.Code{codes.Unavailable, codes.Unknown, codes.Aborted}
}

// Config is the configuration for the Subscriber.
//
// All duration fields accept standard Go duration strings like "10s", "1m"
// when decoded from yaml.
type Config struct {
	// PingInterval is how often the keepalive task emits a ping token into
	// the outgoing half of the stream. A pull protocol treats a silent
	// outgoing side as idle and may terminate the stream.
	// Recommended: 10 seconds.
	PingInterval time.Duration `yaml:"pingInterval"`

	// RetryCodes is the set of transport status codes that trigger a silent
	// reconnect, both on stream open and on mid-stream read failures.
	// Leave nil to use DefaultRetryCodes().
	RetryCodes []codes.Code `yaml:"retryCodes"`

	// CancelledRetryLimit bounds how many times a Cancelled status on
	// stream open is retried before the engine terminates. This mitigates
	// spurious transport-level cancellations. The counter is scoped to the
	// engine lifetime, not reset per reconnection.
	CancelledRetryLimit int `yaml:"cancelledRetryLimit"`

	// CancelledRetryBackoff is the fixed sleep between Cancelled stream-open
	// retries. Other retryable codes reconnect immediately with no backoff.
	CancelledRetryBackoff time.Duration `yaml:"cancelledRetryBackoff"`

	// StreamAckDeadlineSeconds is the ack deadline to use for the stream.
	// It must be provided in the first request of every new stream instance,
	// so the engine resends it on each reconnection.
	// The broker-valid range is [10, 600]. Default: 60.
	StreamAckDeadlineSeconds int32 `yaml:"streamAckDeadlineSeconds"`

	// MaxOutstandingMessages is the flow-control cap on unacknowledged
	// messages per stream instance. Once the cap is reached the broker stops
	// sending until messages are acked or nacked. Values <= 0 mean no limit.
	// Default: 50.
	MaxOutstandingMessages int64 `yaml:"maxOutstandingMessages"`

	// MaxOutstandingBytes is the flow-control cap on unacknowledged bytes
	// per stream instance. Values <= 0 mean no limit.
	// Default: 1_000_000_000.
	MaxOutstandingBytes int64 `yaml:"maxOutstandingBytes"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		PingInterval:             10 * time.Second,
		RetryCodes:               DefaultRetryCodes(),
		CancelledRetryLimit:      5,
		CancelledRetryBackoff:    1000 * time.Millisecond,
		StreamAckDeadlineSeconds: 60,
		MaxOutstandingMessages:   50,
		MaxOutstandingBytes:      1000 * 1000 * 1000,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Zero-valued flow-control caps are left untouched: <= 0 is a meaningful
// setting (no limit), not an omission.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.PingInterval == 0 {
		cfg.PingInterval = defaults.PingInterval
	}
	if cfg.RetryCodes == nil {
		cfg.RetryCodes = defaults.RetryCodes
	}
	if cfg.CancelledRetryLimit == 0 {
		cfg.CancelledRetryLimit = defaults.CancelledRetryLimit
	}
	if cfg.CancelledRetryBackoff == 0 {
		cfg.CancelledRetryBackoff = defaults.CancelledRetryBackoff
	}
	if cfg.StreamAckDeadlineSeconds == 0 {
		cfg.StreamAckDeadlineSeconds = defaults.StreamAckDeadlineSeconds
	}
}

// Validate checks configuration constraints and returns an error for invalid values.
//
// Hard Validation Rules:
//   - PingInterval > 0 (the outgoing stream must be kept alive)
//   - StreamAckDeadlineSeconds within [10, 600] (broker-enforced range)
//   - CancelledRetryLimit >= 0
//   - CancelledRetryBackoff >= 0
//
// Flow-control caps are not validated: any value <= 0 means unlimited.
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.PingInterval <= 0 {
		return fmt.Errorf("PingInterval must be > 0, got %v", cfg.PingInterval)
	}

	if cfg.StreamAckDeadlineSeconds < MinStreamAckDeadlineSeconds ||
		cfg.StreamAckDeadlineSeconds > MaxStreamAckDeadlineSeconds {
		return fmt.Errorf(
			"StreamAckDeadlineSeconds (%d) must be within [%d, %d]",
			cfg.StreamAckDeadlineSeconds, MinStreamAckDeadlineSeconds, MaxStreamAckDeadlineSeconds,
		)
	}

	if cfg.CancelledRetryLimit < 0 {
		return fmt.Errorf("CancelledRetryLimit must be >= 0, got %d", cfg.CancelledRetryLimit)
	}

	if cfg.CancelledRetryBackoff < 0 {
		return fmt.Errorf("CancelledRetryBackoff must be >= 0, got %v", cfg.CancelledRetryBackoff)
	}

	return nil
}

// retryable reports whether code is in the configured retryable set.
func (cfg *Config) retryable(code codes.Code) bool {
	for _, c := range cfg.RetryCodes {
		if c == code {
			return true
		}
	}

	return false
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Test timings are 10-100x faster than production defaults to enable
// rapid iteration without sacrificing test coverage. Use DefaultConfig()
// for production deployments.
//
// Returns:
//   - Config: Configuration with fast timings for tests
//
// Example:
//
//	cfg := pullsub.TestConfig()
//	sub, err := pullsub.New("test-subscription", client, queue, cfg)
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.PingInterval = 50 * time.Millisecond          // 200x faster
	cfg.CancelledRetryBackoff = 10 * time.Millisecond // 100x faster

	return cfg
}
