package pullsub

import "github.com/arloliu/pullsub/types"

// Re-export types from the internal types package.
//
// This file provides a stable, backward-compatible public API for the library's
// core types and interfaces. It uses type aliases to re-export definitions
// from the `types` subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal packages
// to depend on `types` without depending on the root `pullsub` package, while
// still providing a convenient `pullsub.State`, `pullsub.Logger`, etc. for users.
type (
	State                 = types.State
	Message               = types.Message
	ReceivedEnvelope      = types.ReceivedEnvelope
	StreamingPullRequest  = types.StreamingPullRequest
	StreamingPullResponse = types.StreamingPullResponse
)

// Re-export interfaces from the internal types package for convenience.
type (
	PullClient       = types.PullClient
	PullStream       = types.PullStream
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
)

// Re-export State constants from the internal types package.
const (
	StateConnecting   = types.StateConnecting
	StateStreaming    = types.StateStreaming
	StateReconnecting = types.StateReconnecting
	StateTerminated   = types.StateTerminated
)
