package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestObserveRequest_ExposedOnHandler(t *testing.T) {
	ObserveRequest("GET", "/staff/{id}/windows", 200, time.Now().Add(-time.Millisecond))
	ObserveResolve(2)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "staffd_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
	if !strings.Contains(body, "staffd_resolve_runs_total") {
		t.Fatalf("expected resolve counter in metrics output")
	}
}
