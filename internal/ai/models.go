package ai

// GenerateOptions are per-call sampling settings.
type GenerateOptions struct {
	// Temperature near 0 keeps structured replies stable across calls.
	Temperature float32
	// MaxTokens bounds the reply length; 0 leaves the provider default.
	MaxTokens int
	// JSON asks providers that support it to constrain output to JSON.
	JSON bool
}

// Provider names accepted by New.
const (
	ProviderGemini  = "gemini"
	ProviderOllama  = "ollama"
	ProviderOffline = "offline"
)
