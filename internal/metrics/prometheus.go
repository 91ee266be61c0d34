package metrics

import (
	"errors"
	"sync"

	"github.com/arloliu/pullsub/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metric registration is lazy: collectors are created and registered on
// first use so that constructing the collector never fails and unused
// engines register nothing.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	stateTransitions *prometheus.CounterVec
	stateGauge       prometheus.Gauge
	streamOpens      *prometheus.CounterVec
	reconnects       *prometheus.CounterVec
	delivered        prometheus.Counter
	immediateNacks   prometheus.Counter
	ackBatches       *prometheus.CounterVec
	ackBatchSize     *prometheus.HistogramVec
	pings            *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "pullsub" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "pullsub"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.stateTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "subscriber",
			Name:      "state_transitions_total",
			Help:      "Total engine state transitions by source and target state.",
		}, []string{"from", "to"})

		p.stateGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "subscriber",
			Name:      "state",
			Help:      "Current engine state as its numeric value.",
		})

		p.streamOpens = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "subscriber",
			Name:      "stream_opens_total",
			Help:      "Total stream open attempts by result.",
		}, []string{"result"})

		p.reconnects = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "subscriber",
			Name:      "reconnects_total",
			Help:      "Total reconnections by triggering status code.",
		}, []string{"code"})

		p.delivered = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "delivery",
			Name:      "messages_total",
			Help:      "Total lease handles delivered to the consumer queue.",
		})

		p.immediateNacks = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "delivery",
			Name:      "immediate_nacks_total",
			Help:      "Total leases nacked at dispatch time due to shutdown races.",
		})

		p.ackBatches = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "delivery",
			Name:      "ack_batches_total",
			Help:      "Total batched acknowledgment RPCs by operation and result.",
		}, []string{"op", "result"})

		p.ackBatchSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "delivery",
			Name:      "ack_batch_size",
			Help:      "Lease tokens per batched acknowledgment RPC.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}, []string{"op"})

		p.pings = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "keepalive",
			Name:      "pings_total",
			Help:      "Total keepalive ticks by outcome (sent/dropped).",
		}, []string{"outcome"})

		collectors := []prometheus.Collector{
			p.stateTransitions, p.stateGauge, p.streamOpens, p.reconnects,
			p.delivered, p.immediateNacks, p.ackBatches, p.ackBatchSize, p.pings,
		}
		for _, c := range collectors {
			// Tolerate duplicate registration across engine instances sharing
			// a registerer.
			if err := p.reg.Register(c); err != nil {
				var are prometheus.AlreadyRegisteredError
				if !errors.As(err, &are) {
					panic(err)
				}
			}
		}
	})
}

// RecordStateTransition records an engine state transition.
func (p *PrometheusCollector) RecordStateTransition(from, to types.State) {
	p.ensureRegistered()
	p.stateTransitions.WithLabelValues(from.String(), to.String()).Inc()
	p.stateGauge.Set(float64(to))
}

// RecordStreamOpen records a stream open attempt.
func (p *PrometheusCollector) RecordStreamOpen(success bool) {
	p.ensureRegistered()
	p.streamOpens.WithLabelValues(resultLabel(success)).Inc()
}

// RecordReconnect records a reconnection by status code.
func (p *PrometheusCollector) RecordReconnect(code string) {
	p.ensureRegistered()
	p.reconnects.WithLabelValues(code).Inc()
}

// RecordMessageDelivered records one delivered lease handle.
func (p *PrometheusCollector) RecordMessageDelivered() {
	p.ensureRegistered()
	p.delivered.Inc()
}

// RecordImmediateNack records dispatch-time nacked leases.
func (p *PrometheusCollector) RecordImmediateNack(count int) {
	p.ensureRegistered()
	p.immediateNacks.Add(float64(count))
}

// RecordAckBatch records one batched acknowledgment RPC.
func (p *PrometheusCollector) RecordAckBatch(op string, size int, success bool) {
	p.ensureRegistered()
	p.ackBatches.WithLabelValues(op, resultLabel(success)).Inc()
	p.ackBatchSize.WithLabelValues(op).Observe(float64(size))
}

// RecordPing records a keepalive tick.
func (p *PrometheusCollector) RecordPing(sent bool) {
	p.ensureRegistered()
	if sent {
		p.pings.WithLabelValues("sent").Inc()
	} else {
		p.pings.WithLabelValues("dropped").Inc()
	}
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}

	return "failure"
}
