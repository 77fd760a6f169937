package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"salary-compass/domain"
	"salary-compass/repository"
)

// GenerateOptions tunes a single provider call.
type GenerateOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// TextGenerator is the external text-generation provider.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// GenerationConfig holds the knobs of GenerationService.
type GenerationConfig struct {
	Model         string
	FallbackModel string
	CacheTTL      time.Duration
	Timeout       time.Duration
	// Features disables request kinds when set to false. Kinds missing
	// from the map are enabled.
	Features map[domain.RequestKind]bool
}

type promptSpec struct {
	temperature float64
	maxTokens   int
	build       func(payload json.RawMessage) (string, error)
	parse       func(text string) any
}

// GenerationService proxies generation requests to the provider with a
// cache in front and static fallbacks behind.
type GenerationService struct {
	generator TextGenerator
	cache     repository.CacheRepository
	cfg       GenerationConfig
	prompts   map[domain.RequestKind]promptSpec
	group     singleflight.Group
}

// NewGenerationService creates the service. A nil generator disables
// generation and every request is answered with its fallback.
func NewGenerationService(generator TextGenerator, cache repository.CacheRepository, cfg GenerationConfig) *GenerationService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = GenerationCacheTTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = GenerationTimeout
	}
	return &GenerationService{
		generator: generator,
		cache:     cache,
		cfg:       cfg,
		prompts: map[domain.RequestKind]promptSpec{
			domain.KindInsights:          {temperature: 0.7, maxTokens: 500, build: insightsPrompt, parse: splitLines},
			domain.KindNormalizeTitle:    {temperature: 0.3, maxTokens: 50, build: normalizeTitlePrompt, parse: trimmed},
			domain.KindNegotiationScript: {temperature: 0.7, maxTokens: 1000, build: negotiationPrompt, parse: trimmed},
		},
	}
}

// CacheKey identifies a request by kind and a digest of the canonical JSON
// encoding of its payload, so key order and whitespace do not matter.
func CacheKey(kind domain.RequestKind, payload json.RawMessage) (string, error) {
	canonical, err := canonicalJSON(payload)
	if err != nil {
		return "", err
	}
	return "llm:" + string(kind) + ":" + strconv.FormatUint(xxhash.Sum64(canonical), 16), nil
}

func canonicalJSON(payload json.RawMessage) ([]byte, error) {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	// encoding/json sorts map keys.
	return json.Marshal(v)
}

// Generate answers one request. Invalid input yields an error and no
// result. Provider failures yield the static fallback together with an
// error wrapping domain.ErrGenerationFailed.
func (s *GenerationService) Generate(ctx context.Context, kindName string, payload json.RawMessage) (domain.GenerationResult, error) {
	kind, err := s.validate(kindName, payload)
	if err != nil {
		return domain.GenerationResult{}, err
	}
	key, err := CacheKey(kind, payload)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("%w: %v", domain.ErrMissingPayload, err)
	}
	prompt, err := s.prompts[kind].build(payload)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("%w: %v", domain.ErrMissingPayload, err)
	}

	if s.generator == nil || !s.enabled(kind) {
		return Fallback(kind), nil
	}

	if cached, err := s.cache.Get(ctx, key); err == nil {
		return domain.GenerationResult{Result: json.RawMessage(cached), Source: domain.SourceCache}, nil
	} else if !errors.Is(err, repository.ErrCacheMiss) {
		slog.Warn("generation cache read failed", "key", key, "error", err)
	}

	// Concurrent identical requests share one provider call. The call is
	// detached from the first caller so its cancellation does not fail the
	// others.
	v, err, shared := s.group.Do(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeout)
		defer cancel()
		return s.produce(callCtx, kind, key, prompt)
	})
	if err != nil {
		slog.Warn("generation failed, serving fallback", "type", kind, "error", err)
		return Fallback(kind), fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	if shared {
		slog.Debug("generation result shared", "type", kind)
	}

	return domain.GenerationResult{Result: v.(json.RawMessage), Source: domain.SourceLLM}, nil
}

// Invalidate drops the cached answer for a request so the next call
// regenerates it.
func (s *GenerationService) Invalidate(ctx context.Context, kindName string, payload json.RawMessage) error {
	kind, err := s.validate(kindName, payload)
	if err != nil {
		return err
	}
	key, err := CacheKey(kind, payload)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMissingPayload, err)
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidating %s: %w", key, err)
	}
	return nil
}

func (s *GenerationService) validate(kindName string, payload json.RawMessage) (domain.RequestKind, error) {
	if kindName == "" || missing(payload) {
		return "", domain.ErrMissingPayload
	}
	kind, ok := domain.ParseRequestKind(kindName)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRequestKind, kindName)
	}
	return kind, nil
}

// missing reports whether payload is absent or a falsy JSON scalar.
func missing(payload json.RawMessage) bool {
	if len(bytes.TrimSpace(payload)) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return true
	}
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	}
	return false
}

func (s *GenerationService) enabled(kind domain.RequestKind) bool {
	on, ok := s.cfg.Features[kind]
	return !ok || on
}

func (s *GenerationService) produce(ctx context.Context, kind domain.RequestKind, key, prompt string) (json.RawMessage, error) {
	spec := s.prompts[kind]
	opts := GenerateOptions{Model: s.cfg.Model, Temperature: spec.temperature, MaxTokens: spec.maxTokens}
	text, err := s.generator.Generate(ctx, prompt, opts)
	if err != nil && s.cfg.FallbackModel != "" && s.cfg.FallbackModel != s.cfg.Model {
		slog.Warn("primary model failed, retrying with fallback model",
			"model", s.cfg.Model, "fallback_model", s.cfg.FallbackModel, "error", err)
		opts.Model = s.cfg.FallbackModel
		text, err = s.generator.Generate(ctx, prompt, opts)
	}
	if err != nil {
		return nil, err
	}

	result, err := json.Marshal(spec.parse(text))
	if err != nil {
		return nil, fmt.Errorf("encoding %s result: %w", kind, err)
	}

	// Caching is best effort.
	if err := s.cache.Set(ctx, key, string(result), s.cfg.CacheTTL); err != nil {
		slog.Warn("generation cache write failed", "key", key, "error", err)
	}
	return result, nil
}

func splitLines(text string) any {
	lines := []string{}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func trimmed(text string) any {
	return strings.TrimSpace(text)
}

// Fallback returns the static answer for kind.
func Fallback(kind domain.RequestKind) domain.GenerationResult {
	var v any
	switch kind {
	case domain.KindInsights:
		v = []string{
			"Consider developing specialized skills that align with industry trends to increase your market value.",
			"Professionals with your experience level often benefit from expanding their network within the industry.",
			"Look for opportunities to lead projects that demonstrate your strategic thinking abilities.",
		}
	case domain.KindNormalizeTitle:
		v = domain.Label(domain.JobTitles, string(DefaultJobTitle))
	case domain.KindNegotiationScript:
		v = "We're sorry, but the negotiation script generator is currently unavailable. Please try again later."
	default:
		v = "Unable to generate content. Please try again later."
	}
	b, _ := json.Marshal(v)
	return domain.GenerationResult{Result: b, Source: domain.SourceFallback}
}
