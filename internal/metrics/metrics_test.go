package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.IncrementClassification("s1_1", "matched")
	m.IncrementClassification("s1_1", "matched")
	m.IncrementOutcome("AR")

	if got := testutil.ToFloat64(m.Classifications.WithLabelValues("s1_1", "matched")); got != 2 {
		t.Errorf("classifications = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Outcomes.WithLabelValues("AR")); got != 1 {
		t.Errorf("outcomes = %v, want 1", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.IncrementClassification("t", "matched")
	m.IncrementOutcome("AR")
	m.ObserveRequest("/healthz", "200", time.Millisecond)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("/v1/classify", "200", 2*time.Millisecond)
	m.IncrementOutcome("Cmaj")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		"ctdguide_http_request_duration_seconds_count",
		`ctdguide_outcomes_total{tier="Cmaj"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNewIsIndependent(t *testing.T) {
	// Each instance owns its registry, so building two must not panic.
	a, b := New(), New()
	a.IncrementOutcome("AR")
	if got := testutil.ToFloat64(b.Outcomes.WithLabelValues("AR")); got != 0 {
		t.Errorf("second instance saw first instance's counter: %v", got)
	}
}
