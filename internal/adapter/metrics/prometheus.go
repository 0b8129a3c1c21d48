// Package metrics exposes engine counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"dlt-orchestrator/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dlt_engine"

// Prometheus implements ports.EngineMetrics on a private registry.
type Prometheus struct {
	registry *prometheus.Registry

	opsCreated     *prometheus.CounterVec
	opTransitions  *prometheus.CounterVec
	parentStatuses *prometheus.CounterVec
	signerCalls    *prometheus.HistogramVec
	lockWaits      *prometheus.HistogramVec
}

// NewPrometheus registers the engine collectors plus the Go and process collectors.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	m := &Prometheus{
		registry: reg,
		opsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_created_total",
			Help:      "Operations recorded in the ledger.",
		}, []string{"type"}),
		opTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_transitions_total",
			Help:      "Operation status changes.",
		}, []string{"type", "from", "to"}),
		parentStatuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parent_transitions_total",
			Help:      "Saga parent status changes.",
		}, []string{"kind", "to"}),
		signerCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "signer_call_seconds",
			Help:      "Latency of custodial signer calls by result.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"result"}),
		lockWaits: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parent_lock_wait_seconds",
			Help:      "Time spent waiting for a parent lock.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"acquired"}),
	}
	reg.MustRegister(
		m.opsCreated,
		m.opTransitions,
		m.parentStatuses,
		m.signerCalls,
		m.lockWaits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Prometheus) OperationCreated(opType domain.OperationType) {
	m.opsCreated.WithLabelValues(string(opType)).Inc()
}

func (m *Prometheus) OperationTransitioned(opType domain.OperationType, from, to domain.OperationStatus) {
	m.opTransitions.WithLabelValues(string(opType), string(from), string(to)).Inc()
}

func (m *Prometheus) ParentTransitioned(kind domain.ParentKind, to string) {
	m.parentStatuses.WithLabelValues(string(kind), to).Inc()
}

func (m *Prometheus) SignerCall(result string, elapsed time.Duration) {
	m.signerCalls.WithLabelValues(result).Observe(elapsed.Seconds())
}

func (m *Prometheus) LockWait(acquired bool, elapsed time.Duration) {
	label := "false"
	if acquired {
		label = "true"
	}
	m.lockWaits.WithLabelValues(label).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Prometheus) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Nop discards every observation.
type Nop struct{}

func (Nop) OperationCreated(domain.OperationType) {}
func (Nop) OperationTransitioned(domain.OperationType, domain.OperationStatus, domain.OperationStatus) {}
func (Nop) ParentTransitioned(domain.ParentKind, string) {}
func (Nop) SignerCall(string, time.Duration) {}
func (Nop) LockWait(bool, time.Duration) {}
