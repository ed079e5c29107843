package llm

import (
	"fmt"
	"time"
)

// ProviderConfig selects and configures a vision provider.
type ProviderConfig struct {
	Provider string // openai, ollama
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewVisionProvider creates the appropriate VisionProvider for the config.
func NewVisionProvider(cfg ProviderConfig) (VisionProvider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}), nil
	case "ollama", "":
		return NewOllamaClient(OllamaConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported vision provider: %q", cfg.Provider)
	}
}
