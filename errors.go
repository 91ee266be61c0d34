package pullsub

import "errors"

// Sentinel errors returned by the Subscriber.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrClientRequired is returned when the pull client is nil.
	ErrClientRequired = errors.New("pull client is required")

	// ErrSubscriptionRequired is returned when the subscription name is empty.
	ErrSubscriptionRequired = errors.New("subscription name is required")

	// ErrQueueRequired is returned when the outbound lease queue is nil.
	ErrQueueRequired = errors.New("lease queue is required")

	// ErrAlreadyStarted is returned when Start is called on an already running subscriber.
	ErrAlreadyStarted = errors.New("subscriber already started")

	// ErrQueueClosed is returned when a lease is pushed into a closed queue.
	ErrQueueClosed = errors.New("lease queue is closed")
)
