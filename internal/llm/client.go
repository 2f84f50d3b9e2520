package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over LLM providers. Implementations must be safe
// for concurrent use.
type Client interface {
	// Generate produces text for a prompt with an optional system prompt.
	// Temperature is in [0,1]; providers clamp as needed.
	Generate(ctx context.Context, prompt, system string, temperature float64) (string, error)
	// Model returns the underlying model name.
	Model() string
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a client for the configured provider.
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	case ProviderOllama:
		return NewOllamaClient(config), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", config.Provider)
	}
}

// GenerateError represents a failed generation call. The assembler
// propagates these unchanged; retry policy belongs to the caller.
type GenerateError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *GenerateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s generation failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s generation failed: %s", e.Provider, e.Message)
}

func (e *GenerateError) Unwrap() error {
	return e.Cause
}
