package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"salary-compass/domain"
	"salary-compass/repository"
)

type MockGenerator struct {
	mu      sync.Mutex
	Text    string
	Fail    map[string]error
	Release chan struct{}
	Models  []string
	Prompts []string
	Opts    []GenerateOptions
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	m.mu.Lock()
	m.Models = append(m.Models, opts.Model)
	m.Prompts = append(m.Prompts, prompt)
	m.Opts = append(m.Opts, opts)
	m.mu.Unlock()

	if m.Release != nil {
		<-m.Release
	}
	if err := m.Fail[opts.Model]; err != nil {
		return "", err
	}
	return m.Text, nil
}

func (m *MockGenerator) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Models)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, error) {
	return "", errors.New("cache down")
}

func (failingCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("cache down")
}

func (failingCache) Delete(context.Context, string) error {
	return errors.New("cache down")
}

func newTestGenerationService(gen TextGenerator, cache repository.CacheRepository) *GenerationService {
	return NewGenerationService(gen, cache, GenerationConfig{
		Model:         "primary",
		FallbackModel: "secondary",
	})
}

var insightsPayload = json.RawMessage(`{"experienceLevel":"4-7","jobTitle":"manager","skills":["strategy"],"industry":"b2b","salary":116567}`)

func TestGenerate_InsightsFromProvider(t *testing.T) {
	gen := &MockGenerator{Text: "\n- Lead a flagship content program.\n\n- Learn analytics.  \n"}
	svc := newTestGenerationService(gen, repository.NewMemoryCache())

	res, err := svc.Generate(context.Background(), "insights", insightsPayload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != domain.SourceLLM {
		t.Errorf("source = %q, want llm", res.Source)
	}

	var lines []string
	if err := json.Unmarshal(res.Result, &lines); err != nil {
		t.Fatalf("result is not a list: %s", res.Result)
	}
	want := []string{"- Lead a flagship content program.", "- Learn analytics."}
	if len(lines) != len(want) || lines[0] != want[0] || lines[1] != want[1] {
		t.Errorf("lines = %q, want %q", lines, want)
	}

	if gen.Opts[0].Temperature != 0.7 || gen.Opts[0].MaxTokens != 500 {
		t.Errorf("opts = %+v, want temperature 0.7 and 500 tokens", gen.Opts[0])
	}
	if !strings.Contains(gen.Prompts[0], "$116,567") {
		t.Errorf("prompt should carry the formatted salary: %q", gen.Prompts[0])
	}
}

func TestGenerate_CacheHit(t *testing.T) {
	gen := &MockGenerator{Text: "Content Lead"}
	svc := newTestGenerationService(gen, repository.NewMemoryCache())
	payload := json.RawMessage(`{"title": "Editorial Lead"}`)

	if _, err := svc.Generate(context.Background(), "normalize-title", payload); err != nil {
		t.Fatalf("first call: %v", err)
	}
	res, err := svc.Generate(context.Background(), "normalize-title", payload)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if res.Source != domain.SourceCache {
		t.Errorf("source = %q, want cache", res.Source)
	}
	if string(res.Result) != `"Content Lead"` {
		t.Errorf("result = %s", res.Result)
	}
	if gen.calls() != 1 {
		t.Errorf("provider calls = %d, want 1", gen.calls())
	}
}

func TestGenerate_FallbackModelRetry(t *testing.T) {
	gen := &MockGenerator{
		Text: "Negotiate with data.",
		Fail: map[string]error{"primary": errors.New("model overloaded")},
	}
	svc := newTestGenerationService(gen, repository.NewMemoryCache())

	res, err := svc.Generate(context.Background(), "negotiation-script", json.RawMessage(`{"jobTitle":"manager"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != domain.SourceLLM || string(res.Result) != `"Negotiate with data."` {
		t.Errorf("result = %s from %s", res.Result, res.Source)
	}
	if len(gen.Models) != 2 || gen.Models[0] != "primary" || gen.Models[1] != "secondary" {
		t.Errorf("models tried = %v", gen.Models)
	}
	if gen.Opts[1].MaxTokens != 1000 {
		t.Errorf("negotiation max tokens = %d, want 1000", gen.Opts[1].MaxTokens)
	}
}

func TestGenerate_ProviderFailure(t *testing.T) {
	boom := errors.New("provider down")
	gen := &MockGenerator{Fail: map[string]error{"primary": boom, "secondary": boom}}
	cache := repository.NewMemoryCache()
	svc := newTestGenerationService(gen, cache)

	res, err := svc.Generate(context.Background(), "insights", insightsPayload)
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	if !strings.Contains(err.Error(), "provider down") {
		t.Errorf("error should carry the cause: %v", err)
	}
	if res.Source != domain.SourceFallback {
		t.Errorf("source = %q, want fallback", res.Source)
	}
	if string(res.Result) != string(Fallback(domain.KindInsights).Result) {
		t.Errorf("result = %s", res.Result)
	}
	if cache.Len() != 0 {
		t.Error("failures must not be cached")
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	svc := newTestGenerationService(&MockGenerator{Text: "x"}, repository.NewMemoryCache())

	tests := []struct {
		name    string
		kind    string
		payload json.RawMessage
		want    error
	}{
		{"missing type", "", insightsPayload, domain.ErrMissingPayload},
		{"missing payload", "insights", nil, domain.ErrMissingPayload},
		{"null payload", "insights", json.RawMessage("null"), domain.ErrMissingPayload},
		{"malformed payload", "insights", json.RawMessage("{"), domain.ErrMissingPayload},
		{"empty string payload", "insights", json.RawMessage(`""`), domain.ErrMissingPayload},
		{"zero payload", "insights", json.RawMessage("0"), domain.ErrMissingPayload},
		{"false payload", "negotiation-script", json.RawMessage("false"), domain.ErrMissingPayload},
		{"title without title", "normalize-title", json.RawMessage("{}"), domain.ErrMissingPayload},
		{"unknown type", "poem", insightsPayload, domain.ErrInvalidRequestKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Generate(context.Background(), tt.kind, tt.payload)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if res.Result != nil {
				t.Errorf("invalid input should not produce a result, got %s", res.Result)
			}
		})
	}
}

func TestGenerate_Disabled(t *testing.T) {
	t.Run("no generator", func(t *testing.T) {
		svc := newTestGenerationService(nil, repository.NewMemoryCache())
		res, err := svc.Generate(context.Background(), "normalize-title", json.RawMessage(`{"title":"x"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Source != domain.SourceFallback || string(res.Result) != `"Content Specialist"` {
			t.Errorf("result = %s from %s", res.Result, res.Source)
		}
	})

	t.Run("feature flag off", func(t *testing.T) {
		gen := &MockGenerator{Text: "x"}
		svc := NewGenerationService(gen, repository.NewMemoryCache(), GenerationConfig{
			Model:    "primary",
			Features: map[domain.RequestKind]bool{domain.KindNegotiationScript: false},
		})

		res, err := svc.Generate(context.Background(), "negotiation-script", json.RawMessage(`{"jobTitle":"lead"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Source != domain.SourceFallback {
			t.Errorf("source = %q, want fallback", res.Source)
		}
		if gen.calls() != 0 {
			t.Errorf("provider should not be called, got %d calls", gen.calls())
		}

		if _, err := svc.Generate(context.Background(), "insights", insightsPayload); err != nil {
			t.Fatalf("other kinds stay enabled: %v", err)
		}
		if gen.calls() != 1 {
			t.Errorf("provider calls = %d, want 1", gen.calls())
		}
	})
}

func TestGenerate_CacheErrorsIgnored(t *testing.T) {
	gen := &MockGenerator{Text: "Content Writer"}
	svc := newTestGenerationService(gen, failingCache{})

	res, err := svc.Generate(context.Background(), "normalize-title", json.RawMessage(`{"title":"copywriter"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != domain.SourceLLM {
		t.Errorf("source = %q, want llm", res.Source)
	}
}

func TestGenerate_ConcurrentRequestsShareOneCall(t *testing.T) {
	gen := &MockGenerator{Text: "Head of Content", Release: make(chan struct{})}
	svc := newTestGenerationService(gen, repository.NewMemoryCache())
	payload := json.RawMessage(`{"title":"Content Chief"}`)

	const n = 5
	var wg sync.WaitGroup
	results := make([]domain.GenerationResult, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = svc.Generate(context.Background(), "normalize-title", payload)
		}(i)
	}

	// Let the first call reach the provider, then give the others time to
	// join it before releasing.
	deadline := time.Now().Add(2 * time.Second)
	for gen.calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(gen.Release)
	wg.Wait()

	if gen.calls() > n {
		t.Fatalf("provider calls = %d", gen.calls())
	}
	for i, r := range results {
		if string(r.Result) != `"Head of Content"` {
			t.Errorf("result %d = %s", i, r.Result)
		}
	}
	if gen.calls() != 1 {
		t.Errorf("provider calls = %d, want 1", gen.calls())
	}
}

func TestCacheKey(t *testing.T) {
	a, err := CacheKey(domain.KindInsights, json.RawMessage(`{"jobTitle":"manager","skills":["seo"]}`))
	if err != nil {
		t.Fatalf("CacheKey: %v", err)
	}
	b, err := CacheKey(domain.KindInsights, json.RawMessage("{ \"skills\": [\"seo\"],\n \"jobTitle\": \"manager\" }"))
	if err != nil {
		t.Fatalf("CacheKey: %v", err)
	}
	if a != b {
		t.Errorf("key order and whitespace should not matter: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "llm:insights:") {
		t.Errorf("key = %q", a)
	}

	other, _ := CacheKey(domain.KindNegotiationScript, json.RawMessage(`{"jobTitle":"manager","skills":["seo"]}`))
	if other == a {
		t.Error("different kinds must not share a key")
	}
}

func TestInvalidate(t *testing.T) {
	gen := &MockGenerator{Text: "Content Manager"}
	svc := newTestGenerationService(gen, repository.NewMemoryCache())
	payload := json.RawMessage(`{"title":"Managing Editor"}`)

	svc.Generate(context.Background(), "normalize-title", payload)
	if err := svc.Invalidate(context.Background(), "normalize-title", payload); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	res, _ := svc.Generate(context.Background(), "normalize-title", payload)

	if res.Source != domain.SourceLLM {
		t.Errorf("source after invalidate = %q, want llm", res.Source)
	}
	if gen.calls() != 2 {
		t.Errorf("provider calls = %d, want 2", gen.calls())
	}

	if err := svc.Invalidate(context.Background(), "poem", payload); !errors.Is(err, domain.ErrInvalidRequestKind) {
		t.Errorf("err = %v, want ErrInvalidRequestKind", err)
	}
}

func TestNormalizedTitleValue(t *testing.T) {
	tests := map[string]domain.JobTitle{
		"Content Manager":     domain.TitleManager,
		" head of content ":   domain.TitleHead,
		`"VP of Content"`:     domain.TitleVP,
		"strategist":          domain.TitleStrategist,
		"Chief Word Wrangler": domain.TitleSpecialist,
		"":                    domain.TitleSpecialist,
	}
	for in, want := range tests {
		if got := NormalizedTitleValue(in); got != want {
			t.Errorf("NormalizedTitleValue(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeTitlePrompt_RequiresTitle(t *testing.T) {
	if _, err := normalizeTitlePrompt(json.RawMessage(`{"title":"  "}`)); err == nil {
		t.Error("expected error for blank title")
	}
	prompt, err := normalizeTitlePrompt(json.RawMessage(`{"title":"Copy Chief"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Copy Chief", "Content Writer", "VP of Content"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
