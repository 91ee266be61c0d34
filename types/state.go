package types

// State represents the subscriber engine lifecycle state.
//
// States follow a defined progression during normal operation:
//
//	StateConnecting → StateStreaming → StateTerminated
//
// On a retryable stream failure the engine loops back through:
//
//	StateStreaming → StateReconnecting → StateConnecting
//
// StateTerminated is terminal: no state is re-entered after it, and a new
// Subscriber must be constructed to resume consumption.
type State int

const (
	// StateConnecting indicates the engine is opening a pull stream.
	StateConnecting State = iota

	// StateStreaming indicates an open stream is being consumed.
	StateStreaming

	// StateReconnecting indicates a transient stream failure is being retried.
	StateReconnecting

	// StateTerminated indicates the engine has stopped, either cleanly or
	// after a fatal transport error.
	StateTerminated
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "Connecting"
	case StateStreaming:
		return "Streaming"
	case StateReconnecting:
		return "Reconnecting"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}
