package monitoring

import (
	"io"
	"sync"
	"time"

	"github.com/mezonai/nemclient/logx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

type TxRejectedReason string

var (
	TxInvalidKey        TxRejectedReason = "invalid_key"
	TxUnsupported       TxRejectedReason = "unsupported_combination"
	TxEncodingViolation TxRejectedReason = "encoding_invariant"
	TxTimeUnavailable   TxRejectedReason = "time_unavailable"
	TxTransportFailure  TxRejectedReason = "transport"
	TxNodeRejected      TxRejectedReason = "node_rejected"
	TxRejectedUnknown   TxRejectedReason = "other"
)

type clientPromMetrics struct {
	signedTxCount    *prometheus.CounterVec
	announcedTxCount *prometheus.CounterVec
	rejectedTxCount  *prometheus.CounterVec
	announceLatency  prometheus.Histogram
	nodeTime         prometheus.Gauge
	breakerState     *prometheus.GaugeVec
}

func newClientPromMetrics(reg prometheus.Registerer) *clientPromMetrics {
	factory := promauto.With(reg)
	return &clientPromMetrics{
		signedTxCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nem_client_signed_tx_count",
				Help: "The total number of transactions encoded and signed",
			},
			[]string{"kind"},
		),
		announcedTxCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nem_client_announced_tx_count",
				Help: "The total number of transactions accepted by the node",
			},
			[]string{"kind"},
		),
		rejectedTxCount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nem_client_rejected_tx_count",
				Help: "The total number of transactions that failed before or during announce",
			},
			[]string{"reason"},
		),
		announceLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name: "nem_client_announce_latency_seconds",
				Help: "Round trip of the announce request to the node",
			},
		),
		nodeTime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "nem_client_node_time_seconds",
				Help: "Last network time reported by the node, in seconds since the nemesis block",
			},
		),
		breakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nem_client_breaker_state",
				Help: "Circuit breaker state per node (0 closed, 1 half-open, 2 open)",
			},
			[]string{"node"},
		),
	}
}

var (
	registry      = prometheus.NewRegistry()
	clientMetrics *clientPromMetrics
	initOnce      sync.Once
)

// InitMetrics registers the client metrics once. Recording functions call it lazily.
func InitMetrics() {
	initOnce.Do(func() {
		logx.Debug("MONITORING", "Registering prometheus metrics")
		clientMetrics = newClientPromMetrics(registry)
	})
}

func metrics() *clientPromMetrics {
	InitMetrics()
	return clientMetrics
}

// WriteText writes the current metrics in the Prometheus text format
func WriteText(w io.Writer) error {
	InitMetrics()
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func IncreaseSignedTxCount(kind string) {
	metrics().signedTxCount.With(prometheus.Labels{"kind": kind}).Inc()
}

func IncreaseAnnouncedTxCount(kind string) {
	metrics().announcedTxCount.With(prometheus.Labels{"kind": kind}).Inc()
}

func RecordRejectedTx(reason TxRejectedReason) {
	metrics().rejectedTxCount.With(prometheus.Labels{
		"reason": string(reason),
	}).Inc()
}

func RecordAnnounceLatency(duration time.Duration) {
	metrics().announceLatency.Observe(duration.Seconds())
}

func SetNodeTime(timeStamp int32) {
	metrics().nodeTime.Set(float64(timeStamp))
}

func SetBreakerState(node string, state int) {
	metrics().breakerState.With(prometheus.Labels{"node": node}).Set(float64(state))
}
