package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe(http.MethodGet, "/api/v1/products", http.StatusOK, 250*time.Millisecond)
	m.Observe(http.MethodGet, "/api/v1/products", http.StatusOK, 50*time.Millisecond)
	m.Observe("", "", http.StatusInternalServerError, time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	byName := map[string]bool{}
	for _, mf := range families {
		byName[mf.GetName()] = true
	}
	if !byName["http_requests_total"] {
		t.Fatalf("expected http_requests_total to be registered, got %v", byName)
	}
	if !byName["http_request_duration_seconds"] {
		t.Fatalf("expected http_request_duration_seconds to be registered, got %v", byName)
	}
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe(http.MethodGet, "/x", http.StatusOK, time.Second)

	empty := NewHTTPMetrics(nil)
	empty.Observe(http.MethodGet, "/x", http.StatusOK, time.Second)
}
