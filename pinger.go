package pullsub

import (
	"context"
	"time"
)

// runPinger is the keepalive task. It sustains the outgoing half of the
// bidirectional stream, which a pull protocol otherwise treats as idle and
// may terminate.
//
// The loop races a fixed-interval ticker against ctx. On each tick it sends
// a ping token into the outgoing channel without blocking; a dropped token
// is ignored since the stream may already be torn down or simply not
// draining. On cancellation it performs the engine's only close of the
// ping channel and exits.
func (s *Subscriber) runPinger(ctx context.Context) {
	defer close(s.pingerDone)

	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(s.pings)
			s.logger.Debug("pinger stopped", "subscription", s.subscription)

			return
		case <-ticker.C:
			select {
			case s.pings <- struct{}{}:
				s.metrics.RecordPing(true)
			default:
				s.metrics.RecordPing(false)
			}
		}
	}
}
