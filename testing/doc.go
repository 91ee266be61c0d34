// Package testing provides test utilities for the pullsub library.
//
// This package offers a scriptable fake of the types.PullClient capability
// plus a logger that writes through testing.T. It follows Go's convention of
// providing testing utilities in a dedicated package (similar to
// net/http/httptest).
//
// Key utilities:
//   - NewFakeClient: Scriptable pull client recording every RPC it receives
//   - NewFakeStream: Hand-fed inbound frame stream
//   - NewTestLogger: Logger routed to t.Logf
//
// Example usage:
//
//	import (
//	    "testing"
//	    pulltest "github.com/arloliu/pullsub/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    client := pulltest.NewFakeClient()
//	    stream := pulltest.NewFakeStream()
//	    client.EnqueueStream(stream)
//	    // drive stream.Deliver(...) / stream.End() from the test
//	}
package testing
