package provider

import (
	"errors"
	"testing"

	"github.com/mohammad-safakhou/weekender/config"
	gemini_provider "github.com/mohammad-safakhou/weekender/provider/gemini"
	openai_provider "github.com/mohammad-safakhou/weekender/provider/openai"
)

func TestNewFromConfigPrefersGemini(t *testing.T) {
	cfg := config.LLMConfig{
		GoogleAPIKey: "g-key",
		OpenAIAPIKey: "o-key",
		GeminiModel:  "gemini-2.0-flash",
		OpenAIModel:  "gpt-4-turbo-preview",
	}

	p, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*gemini_provider.Client); !ok {
		t.Fatalf("expected gemini client when both keys are set, got %T", p)
	}
	if p.Model() != "gemini-2.0-flash" {
		t.Fatalf("unexpected model: %q", p.Model())
	}
}

func TestNewFromConfigFallsBackToOpenAI(t *testing.T) {
	cfg := config.LLMConfig{OpenAIAPIKey: "o-key", OpenAIModel: "gpt-4-turbo-preview"}

	p, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*openai_provider.Client); !ok {
		t.Fatalf("expected openai client, got %T", p)
	}
}

func TestNewFromConfigNoCredentials(t *testing.T) {
	_, err := NewFromConfig(config.LLMConfig{})
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}
