package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestPipelineCollectorRecordsMetrics(t *testing.T) {
	collector, err := NewPipelineCollector()
	if err != nil {
		t.Fatalf("NewPipelineCollector returned error: %v", err)
	}

	collector.ObserveStage("enrich_users", 250*time.Millisecond)
	collector.RecordProcessed("enrich_users", 12)
	collector.RecordSkipped("run_campaigns", 3)
	collector.RecordError("match")
	collector.ObserveLLMRequest("match", "ok", 800*time.Millisecond)
	collector.ObserveLLMRequest("match", "error", 100*time.Millisecond)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected metrics handler to return 200, got %d", rr.Code)
	}

	body := rr.Body.String()
	expected := []string{
		`leo_pipeline_stage_duration_seconds_count{stage="enrich_users"} 1`,
		`leo_pipeline_stage_records_total{outcome="processed",stage="enrich_users"} 12`,
		`leo_pipeline_stage_records_total{outcome="skipped",stage="run_campaigns"} 3`,
		`leo_pipeline_stage_errors_total{stage="match"} 1`,
		`leo_llm_requests_total{operation="match",status="ok"} 1`,
		`leo_llm_requests_total{operation="match",status="error"} 1`,
		`leo_llm_request_duration_seconds_count{operation="match"} 2`,
	}
	for _, want := range expected {
		if !strings.Contains(body, want) {
			t.Errorf("metric %q not found in output", want)
		}
	}
}

func TestPipelineCollectorsUseIsolatedRegistries(t *testing.T) {
	if _, err := NewPipelineCollector(); err != nil {
		t.Fatalf("first collector: %v", err)
	}
	if _, err := NewPipelineCollector(); err != nil {
		t.Fatalf("second collector: %v", err)
	}
}
