package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.EngineMetrics = (*Prometheus)(nil)
	_ ports.EngineMetrics = Nop{}
)

// family gathers the registry and returns the named metric family.
func family(t *testing.T, m *Prometheus, name string) *dto.MetricFamily {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric family %s not gathered", name)
	return nil
}

func labels(metric *dto.Metric) map[string]string {
	out := make(map[string]string, len(metric.GetLabel()))
	for _, l := range metric.GetLabel() {
		out[l.GetName()] = l.GetValue()
	}
	return out
}

func TestPrometheus_Counters(t *testing.T) {
	m := NewPrometheus()

	m.OperationCreated(domain.OperationScheduleCreate)
	m.OperationCreated(domain.OperationScheduleCreate)
	m.OperationTransitioned(domain.OperationScheduleCreate, domain.OperationPendingSignature, domain.OperationPendingConfirmation)
	m.ParentTransitioned(domain.ParentWageAdvance, "awaiting_approval")

	created := family(t, m, "dlt_engine_operations_created_total").GetMetric()
	require.Len(t, created, 1)
	assert.Equal(t, map[string]string{"type": "SCHEDULE_CREATE"}, labels(created[0]))
	assert.Equal(t, 2.0, created[0].GetCounter().GetValue())

	moved := family(t, m, "dlt_engine_operation_transitions_total").GetMetric()
	require.Len(t, moved, 1)
	assert.Equal(t, map[string]string{
		"type": "SCHEDULE_CREATE",
		"from": "PENDING_SIGNATURE",
		"to":   "PENDING_CONFIRMATION",
	}, labels(moved[0]))

	parents := family(t, m, "dlt_engine_parent_transitions_total").GetMetric()
	require.Len(t, parents, 1)
	assert.Equal(t, 1.0, parents[0].GetCounter().GetValue())
}

func TestPrometheus_Histograms(t *testing.T) {
	m := NewPrometheus()

	m.SignerCall("submitted", 120*time.Millisecond)
	m.LockWait(true, time.Millisecond)
	m.LockWait(false, 2*time.Second)

	signer := family(t, m, "dlt_engine_signer_call_seconds").GetMetric()
	require.Len(t, signer, 1)
	assert.Equal(t, uint64(1), signer[0].GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.12, signer[0].GetHistogram().GetSampleSum(), 1e-9)

	waits := family(t, m, "dlt_engine_parent_lock_wait_seconds").GetMetric()
	assert.Len(t, waits, 2)
}

func TestPrometheus_Handler(t *testing.T) {
	m := NewPrometheus()
	m.OperationCreated(domain.OperationSwap)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `dlt_engine_operations_created_total{type="SWAP_PREPARED"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
