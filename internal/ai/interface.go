package ai

import (
	"context"
)

// Generator is the contract with an external language model: prompt in, raw text out.
// This interface allows for swapping providers (Gemini, Ollama, offline) by config.
type Generator interface {
	// Generate returns the model's free-form reply. Errors are transport failures
	// (connection, timeout, non-success status, empty candidates).
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}
