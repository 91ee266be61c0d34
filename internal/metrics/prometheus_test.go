package metrics

import (
	"testing"

	"github.com/arloliu/pullsub/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollectorRegistersLazily(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewPrometheus(reg, "test")

	// Nothing registered until the first record.
	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families)

	collector.RecordStateTransition(types.StateConnecting, types.StateStreaming)
	collector.RecordStreamOpen(true)
	collector.RecordStreamOpen(false)
	collector.RecordReconnect("Unavailable")
	collector.RecordMessageDelivered()
	collector.RecordImmediateNack(2)
	collector.RecordAckBatch("modack", 2, true)
	collector.RecordPing(true)
	collector.RecordPing(false)

	families, err = reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["test_subscriber_state_transitions_total"])
	require.True(t, names["test_subscriber_stream_opens_total"])
	require.True(t, names["test_subscriber_reconnects_total"])
	require.True(t, names["test_delivery_messages_total"])
	require.True(t, names["test_delivery_immediate_nacks_total"])
	require.True(t, names["test_delivery_ack_batches_total"])
	require.True(t, names["test_keepalive_pings_total"])
}

func TestPrometheusCollectorDefaults(t *testing.T) {
	collector := NewPrometheus(prometheus.NewRegistry(), "")
	require.Equal(t, "pullsub", collector.namespace)
}
