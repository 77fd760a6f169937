package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salary-compass/service"
)

func newTestRouter(t *testing.T, limit int) http.Handler {
	t.Helper()
	estimator := service.NewSalaryEstimator(service.DefaultCoefficients())
	share := service.NewShareService("https://example.test")
	limiter := NewRateLimiter(limit, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(Handlers{
		Estimate:   NewEstimateHandler(estimator, share),
		Share:      NewShareHandler(estimator, share),
		Generation: newGenerationHandler(nil),
		Limiter:    limiter,
	})
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t, 100)

	tests := []struct {
		method string
		target string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/salary/options", "", http.StatusOK},
		{http.MethodPost, "/salary/estimate", scenarioBody, http.StatusOK},
		{http.MethodPost, "/salary/share", scenarioBody, http.StatusOK},
		{http.MethodPost, "/salary/report", scenarioBody, http.StatusOK},
		{http.MethodPost, "/salary/normalize-title", `{"title": "Copywriter"}`, http.StatusOK},
		{http.MethodPost, "/api/ai", `{"type": "insights", "data": {"jobTitle": "writer"}}`, http.StatusOK},
		{http.MethodDelete, "/api/ai", `{"type": "insights", "data": {"jobTitle": "writer"}}`, http.StatusNoContent},
		{http.MethodGet, "/share/x?exp=0-3&title=writer&industry=b2c&location=uk&type=freelance&skills=seo", "", http.StatusOK},
		{http.MethodGet, "/salary/estimate", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, bytes.NewBufferString(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouter_ReportContentType(t *testing.T) {
	router := newTestRouter(t, 100)

	req := postJSON("/salary/report", scenarioBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("body is not a PDF document")
	}
}

func TestRouter_HealthIsNotRateLimited(t *testing.T) {
	router := newTestRouter(t, 1)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("health request %d: got %d", i, w.Code)
		}
	}

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/salary/options", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/salary/options", nil))
	if first.Code != http.StatusOK || second.Code != http.StatusTooManyRequests {
		t.Errorf("got %d then %d, want 200 then 429", first.Code, second.Code)
	}
}
