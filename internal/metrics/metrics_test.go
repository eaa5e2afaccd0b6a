package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRecordRequestIncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordRequest("/api", OutcomeOK)
	m.RecordRequest("/api", OutcomeOK)
	m.RecordRequest("", OutcomeRuleMiss)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	if !strings.Contains(body, `rebound_requests_total{outcome="ok",rule="/api"} 2`) {
		t.Errorf("expected counter of 2 for /api ok, body:\n%s", body)
	}
	if !strings.Contains(body, `rebound_requests_total{outcome="rule_miss",rule=""} 1`) {
		t.Errorf("expected counter of 1 for rule_miss, body:\n%s", body)
	}
}

func TestObserveUpstreamDurationRecorded(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveUpstreamDuration("/api", 50*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "rebound_upstream_request_duration_seconds") {
		t.Error("expected histogram metric to be present")
	}
}

func TestSetQueueDepth(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SetQueueDepth(42)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "rebound_queue_depth 42") {
		t.Errorf("expected gauge value 42, body:\n%s", rec.Body.String())
	}
}
