package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestMetrics_Exposition(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Execution("sudo", "COMPLETED", 250*time.Millisecond)
	m.Execution("sudo", "COMPLETED", time.Second)
	m.Execution("none", "REJECTED", 0)
	m.Rejection("not_allowed")
	m.AuditFailure()

	out := scrape(t, m)
	for _, want := range []string{
		`hostmcp_executions_total{method="sudo",status="COMPLETED"} 2`,
		`hostmcp_executions_total{method="none",status="REJECTED"} 1`,
		`hostmcp_rejections_total{reason="not_allowed"} 1`,
		`hostmcp_audit_failures_total 1`,
		`hostmcp_execution_duration_seconds_count{method="sudo"} 2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, `hostmcp_execution_duration_seconds_count{method="none"}`) {
		t.Error("zero duration should not be observed")
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.Execution("none", "COMPLETED", time.Second)
	m.Rejection("unsafe_target")
	m.AuditFailure()
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// Registering twice on the default registry would panic.
	a := New(prometheus.NewRegistry())
	b := New(prometheus.NewRegistry())
	a.Rejection("not_allowed")

	if strings.Contains(scrape(t, b), `hostmcp_rejections_total{reason="not_allowed"}`) {
		t.Error("registries share state")
	}
}
