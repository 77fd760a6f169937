package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"salary-compass/domain"
	"salary-compass/repository"
	"salary-compass/service"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _ string, _ service.GenerateOptions) (string, error) {
	s.calls++
	return s.text, s.err
}

func newGenerationHandler(gen service.TextGenerator) *GenerationHandler {
	return NewGenerationHandler(service.NewGenerationService(gen, repository.NewMemoryCache(), service.GenerationConfig{
		Model: "primary",
	}))
}

func TestGenerationHandler_Generate(t *testing.T) {
	gen := &stubGenerator{text: "Content Manager"}
	handler := newGenerationHandler(gen)

	body := `{"type": "normalize-title", "data": {"title": "Managing Editor"}}`

	w := httptest.NewRecorder()
	handler.Generate(w, postJSON("/api/ai", body))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var first domain.GenerationResult
	if err := json.NewDecoder(w.Body).Decode(&first); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if first.Source != domain.SourceLLM {
		t.Errorf("source = %q, want %q", first.Source, domain.SourceLLM)
	}
	if string(first.Result) != `"Content Manager"` {
		t.Errorf("result = %s", first.Result)
	}

	w = httptest.NewRecorder()
	handler.Generate(w, postJSON("/api/ai", body))
	var second domain.GenerationResult
	if err := json.NewDecoder(w.Body).Decode(&second); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if second.Source != domain.SourceCache {
		t.Errorf("second source = %q, want %q", second.Source, domain.SourceCache)
	}
	if gen.calls != 1 {
		t.Errorf("provider called %d times, want 1", gen.calls)
	}
}

func TestGenerationHandler_BadInput(t *testing.T) {
	handler := newGenerationHandler(&stubGenerator{text: "x"})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing data", `{"type": "insights"}`, domain.ErrMissingPayload.Error()},
		{"missing type", `{"data": {"title": "x"}}`, domain.ErrMissingPayload.Error()},
		{"unknown type", `{"type": "poem", "data": {"topic": "x"}}`, domain.ErrInvalidRequestKind.Error()},
		{"empty string data", `{"type": "insights", "data": ""}`, domain.ErrMissingPayload.Error()},
		{"zero data", `{"type": "insights", "data": 0}`, domain.ErrMissingPayload.Error()},
		{"false data", `{"type": "insights", "data": false}`, domain.ErrMissingPayload.Error()},
		{"normalize without title", `{"type": "normalize-title", "data": {}}`, domain.ErrMissingPayload.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Generate(w, postJSON("/api/ai", tt.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var resp generationErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Error != tt.want {
				t.Errorf("error = %q, want %q", resp.Error, tt.want)
			}
		})
	}
}

func TestGenerationHandler_ProviderFailure(t *testing.T) {
	handler := newGenerationHandler(&stubGenerator{err: errors.New("upstream down")})

	w := httptest.NewRecorder()
	handler.Generate(w, postJSON("/api/ai", `{"type": "negotiation-script", "data": {"jobTitle": "manager"}}`))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var resp generationErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error != domain.ErrGenerationFailed.Error() {
		t.Errorf("error = %q", resp.Error)
	}
	if resp.Source != domain.SourceFallback {
		t.Errorf("source = %q, want fallback", resp.Source)
	}
	want := service.Fallback(domain.KindNegotiationScript).Result
	if string(resp.Fallback) != string(want) {
		t.Errorf("fallback = %s, want %s", resp.Fallback, want)
	}
}

func TestGenerationHandler_Invalidate(t *testing.T) {
	gen := &stubGenerator{text: "Content Lead"}
	handler := newGenerationHandler(gen)
	body := `{"type": "normalize-title", "data": {"title": "Editorial Lead"}}`

	handler.Generate(httptest.NewRecorder(), postJSON("/api/ai", body))

	req := postJSON("/api/ai", body)
	req.Method = http.MethodDelete
	w := httptest.NewRecorder()
	handler.Invalidate(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	handler.Generate(httptest.NewRecorder(), postJSON("/api/ai", body))
	if gen.calls != 2 {
		t.Errorf("provider called %d times, want 2", gen.calls)
	}
}

func TestGenerationHandler_NormalizeTitle(t *testing.T) {
	tests := []struct {
		name      string
		gen       service.TextGenerator
		wantValue string
		wantSrc   domain.Source
	}{
		{"provider answer", &stubGenerator{text: "Head of Content"}, "head", domain.SourceLLM},
		{"unrecognized answer", &stubGenerator{text: "Chief Storyteller"}, "specialist", domain.SourceLLM},
		{"provider failure", &stubGenerator{err: errors.New("boom")}, "specialist", domain.SourceFallback},
		{"no provider", nil, "specialist", domain.SourceFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newGenerationHandler(tt.gen)

			w := httptest.NewRecorder()
			handler.NormalizeTitle(w, postJSON("/salary/normalize-title", `{"title": "Content Boss"}`))
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}

			var resp normalizeTitleResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", resp.Value, tt.wantValue)
			}
			if resp.Source != tt.wantSrc {
				t.Errorf("source = %q, want %q", resp.Source, tt.wantSrc)
			}
			if resp.Title != "Content Boss" {
				t.Errorf("title = %q", resp.Title)
			}
		})
	}
}

func TestGenerationHandler_NormalizeTitleEmpty(t *testing.T) {
	handler := newGenerationHandler(nil)

	w := httptest.NewRecorder()
	handler.NormalizeTitle(w, postJSON("/salary/normalize-title", `{"title": ""}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGenerationHandler_NormalizeTitleUnreadableCache(t *testing.T) {
	cache := repository.NewMemoryCache()
	payload, _ := json.Marshal(domain.NormalizeTitlePayload{Title: "Content Boss"})
	key, err := service.CacheKey(domain.KindNormalizeTitle, payload)
	if err != nil {
		t.Fatalf("CacheKey: %v", err)
	}
	cache.Set(context.Background(), key, `["not","a","title"]`, 0)

	gen := &stubGenerator{text: "Head of Content"}
	handler := NewGenerationHandler(service.NewGenerationService(gen, cache, service.GenerationConfig{Model: "primary"}))

	w := httptest.NewRecorder()
	handler.NormalizeTitle(w, postJSON("/salary/normalize-title", `{"title": "Content Boss"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp normalizeTitleResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Value != "specialist" || resp.Label != "Content Specialist" {
		t.Errorf("got %q/%q, want the default title", resp.Value, resp.Label)
	}
	if resp.Source != domain.SourceFallback {
		t.Errorf("source = %q, want %q", resp.Source, domain.SourceFallback)
	}
	if gen.calls != 0 {
		t.Errorf("provider called %d times, want the cached entry to be used", gen.calls)
	}
}
