package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	DefaultOllamaURL   = "http://127.0.0.1:11434"
	DefaultOllamaModel = "qwen2.5:14b-instruct"
)

// OllamaProvider implements Generator against a local Ollama server through langchaingo.
type OllamaProvider struct {
	llm   *ollama.LLM
	model string
}

func NewOllamaProvider(serverURL, model string) (*OllamaProvider, error) {
	if serverURL == "" {
		serverURL = DefaultOllamaURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithFormat("json"),
	)
	if err != nil {
		return nil, fmt.Errorf("ollama: create client: %w", err)
	}
	return &OllamaProvider{llm: llm, model: model}, nil
}

func (p *OllamaProvider) Name() string { return ProviderOllama }

func (p *OllamaProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	callOpts := []llms.CallOption{llms.WithTemperature(float64(opts.Temperature))}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	out, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt, callOpts...)
	if err != nil {
		return "", fmt.Errorf("ollama: generate with %s: %w", p.model, err)
	}
	return out, nil
}
