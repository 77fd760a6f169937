package service

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LLMGenerator adapts a langchaingo model to TextGenerator.
type LLMGenerator struct {
	client llms.Model
}

func NewLLMGenerator(client llms.Model) *LLMGenerator {
	return &LLMGenerator{client: client}
}

// NewOpenAIGenerator builds a generator for the OpenAI chat API. baseURL
// may be empty to use the public endpoint.
func NewOpenAIGenerator(apiKey, model, baseURL string) (*LLMGenerator, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating openai client: %w", err)
	}
	return NewLLMGenerator(client), nil
}

func (g *LLMGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	callOpts := []llms.CallOption{
		llms.WithTemperature(opts.Temperature),
	}
	if opts.Model != "" {
		callOpts = append(callOpts, llms.WithModel(opts.Model))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, g.client, prompt, callOpts...)
	if err != nil {
		return "", fmt.Errorf("generating text: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("no response from model")
	}
	return text, nil
}
