package llm

import (
	"context"
	"time"
)

// Client defines the interface for inference providers.
type Client interface {
	// Complete sends a single-turn instruction to the named model and
	// returns the raw text of the reply. The request asks the provider to
	// constrain output to a JSON object; parsing is the caller's concern.
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Config holds configuration for the inference client.
type Config struct {
	APIKey      string
	BaseURL     string // Defaults to the Groq OpenAI-compatible endpoint
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}
