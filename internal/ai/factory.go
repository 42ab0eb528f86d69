package ai

import (
	"context"
	"fmt"
	"strings"
)

// Settings select and configure a provider.
type Settings struct {
	Provider    string
	GeminiKey   string
	GeminiModel string
	OllamaURL   string
	OllamaModel string
}

// New builds the configured Generator. The returned close func is never nil.
func New(ctx context.Context, s Settings) (Generator, func(), error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case ProviderGemini:
		p, err := NewGeminiProvider(ctx, s.GeminiKey, s.GeminiModel)
		if err != nil {
			return nil, func() {}, err
		}
		return p, p.Close, nil
	case ProviderOllama, "":
		p, err := NewOllamaProvider(s.OllamaURL, s.OllamaModel)
		if err != nil {
			return nil, func() {}, err
		}
		return p, func() {}, nil
	case ProviderOffline:
		return NewOfflineProvider(), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown model provider %q", s.Provider)
	}
}
