package provider

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/weekender/config"
	gemini_provider "github.com/mohammad-safakhou/weekender/provider/gemini"
	openai_provider "github.com/mohammad-safakhou/weekender/provider/openai"
)

// ErrNoCredentials is returned when neither provider credential is configured.
var ErrNoCredentials = errors.New("no LLM API key found: set GOOGLE_API_KEY or OPENAI_API_KEY")

// Provider is the reasoning-service boundary consumed by every pipeline
// stage: a single text-completion operation treated as a black box.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// NewFromConfig creates an LLM client from configuration. A Google
// credential takes precedence over an OpenAI one; absence of both is a
// fatal configuration error at startup.
func NewFromConfig(cfg config.LLMConfig) (Provider, error) {
	switch {
	case cfg.GoogleAPIKey != "":
		return gemini_provider.NewClient(
			cfg.GoogleAPIKey,
			cfg.GeminiModel,
			cfg.Temperature,
			cfg.MaxTokens,
			cfg.Timeout,
			cfg.InsecureSkipVerify,
		), nil
	case cfg.OpenAIAPIKey != "":
		return openai_provider.NewClient(
			cfg.OpenAIAPIKey,
			cfg.OpenAIModel,
			cfg.BaseURL,
			cfg.Temperature,
			cfg.MaxTokens,
			cfg.Timeout,
			cfg.InsecureSkipVerify,
		), nil
	default:
		return nil, ErrNoCredentials
	}
}
