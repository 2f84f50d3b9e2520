// Package llm provides the text-generation client abstraction and its
// provider implementations.
package llm

import "os"

// Provider identifies an LLM backend.
type Provider string

// Supported providers. Ollama is the default: generation runs against a
// local daemon unless a hosted provider is configured.
const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// Default settings when the environment does not override them.
const (
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "llama3.2"
	DefaultGeminiModel   = "gemini-2.5-flash"
)

// Config holds provider selection and connection settings.
type Config struct {
	Provider Provider
	BaseURL  string // Ollama daemon URL
	Model    string
	APIKey   string // Gemini API key, or Ollama Cloud bearer token
}

// DefaultConfig builds a Config from the environment, defaulting to a local
// Ollama daemon.
func DefaultConfig() *Config {
	cfg := &Config{
		Provider: ProviderOllama,
		BaseURL:  DefaultOllamaBaseURL,
		Model:    DefaultOllamaModel,
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		cfg.Provider = Provider(provider)
	}

	switch cfg.Provider {
	case ProviderGemini:
		cfg.Model = DefaultGeminiModel
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			cfg.Model = model
		}
	default:
		if url := os.Getenv("OLLAMA_BASE_URL"); url != "" {
			cfg.BaseURL = url
		}
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			cfg.Model = model
		}
		cfg.APIKey = os.Getenv("OLLAMA_API_KEY")
	}
	return cfg
}
