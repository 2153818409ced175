package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/services/health"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/config"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/submissions"
)

func newTestRouter(ratePerMin float64) http.Handler {
	return NewRouter(RouterDeps{
		Config:      config.Config{SubmitRatePerMin: ratePerMin},
		Health:      health.NewService(nil),
		Submissions: submissions.NewHandler(&submissions.Orchestrator{}, nil),
	})
}

func TestHealthRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(6).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestMetricsRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(6).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "submissions_started_total") {
		t.Fatalf("unexpected metrics response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSubmissionRouteIsRateLimited(t *testing.T) {
	r := newTestRouter(1)
	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/v1/submissions", nil))
	if first.Code == http.StatusTooManyRequests {
		t.Fatalf("first request should not be limited")
	}
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/v1/submissions", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(6).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
