package pullsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 10*time.Second, cfg.PingInterval)
	require.Equal(t, 5, cfg.CancelledRetryLimit)
	require.Equal(t, 1000*time.Millisecond, cfg.CancelledRetryBackoff)
	require.Equal(t, int32(60), cfg.StreamAckDeadlineSeconds)
	require.Equal(t, int64(50), cfg.MaxOutstandingMessages)
	require.Equal(t, int64(1000*1000*1000), cfg.MaxOutstandingBytes)
	require.NoError(t, cfg.Validate())
}

func TestDefaultRetryCodes(t *testing.T) {
	codesSet := DefaultRetryCodes()

	require.Contains(t, codesSet, codes.Unavailable)
	require.Contains(t, codesSet, codes.Unknown)
	require.Contains(t, codesSet, codes.Aborted)

	// Cancelled has its own bounded-retry rule and must not reconnect silently.
	require.NotContains(t, codesSet, codes.Canceled)
}

func TestSetDefaults(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, DefaultConfig().PingInterval, cfg.PingInterval)
		require.Equal(t, DefaultConfig().RetryCodes, cfg.RetryCodes)
		require.Equal(t, DefaultConfig().CancelledRetryLimit, cfg.CancelledRetryLimit)
		require.Equal(t, DefaultConfig().StreamAckDeadlineSeconds, cfg.StreamAckDeadlineSeconds)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := Config{
			PingInterval:             3 * time.Second,
			RetryCodes:               []codes.Code{codes.Internal},
			StreamAckDeadlineSeconds: 30,
		}
		SetDefaults(&cfg)

		require.Equal(t, 3*time.Second, cfg.PingInterval)
		require.Equal(t, []codes.Code{codes.Internal}, cfg.RetryCodes)
		require.Equal(t, int32(30), cfg.StreamAckDeadlineSeconds)
	})

	t.Run("leaves flow control caps untouched", func(t *testing.T) {
		cfg := Config{MaxOutstandingMessages: -1, MaxOutstandingBytes: 0}
		SetDefaults(&cfg)

		// <= 0 means unlimited, not an omission.
		require.Equal(t, int64(-1), cfg.MaxOutstandingMessages)
		require.Equal(t, int64(0), cfg.MaxOutstandingBytes)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("rejects deadline below broker minimum", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StreamAckDeadlineSeconds = 9
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects deadline above broker maximum", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StreamAckDeadlineSeconds = 601
		require.Error(t, cfg.Validate())
	})

	t.Run("accepts deadline bounds", func(t *testing.T) {
		cfg := DefaultConfig()

		cfg.StreamAckDeadlineSeconds = 10
		require.NoError(t, cfg.Validate())

		cfg.StreamAckDeadlineSeconds = 600
		require.NoError(t, cfg.Validate())
	})

	t.Run("rejects non-positive ping interval", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PingInterval = 0
		require.Error(t, cfg.Validate())
	})

	t.Run("rejects negative retry settings", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CancelledRetryLimit = -1
		require.Error(t, cfg.Validate())

		cfg = DefaultConfig()
		cfg.CancelledRetryBackoff = -time.Second
		require.Error(t, cfg.Validate())
	})
}

func TestConfigRetryable(t *testing.T) {
	cfg := DefaultConfig()

	require.True(t, cfg.retryable(codes.Unavailable))
	require.True(t, cfg.retryable(codes.Unknown))
	require.True(t, cfg.retryable(codes.Aborted))
	require.False(t, cfg.retryable(codes.Canceled))
	require.False(t, cfg.retryable(codes.InvalidArgument))
	require.False(t, cfg.retryable(codes.OK))
}
