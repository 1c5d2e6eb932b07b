package utils

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultGeminiModel = "gemini-1.5-pro"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// GenerationParams are the sampling knobs forwarded to the generative API.
type GenerationParams struct {
	Temperature     float32 `mapstructure:"temperature" json:"temperature"`
	TopP            float32 `mapstructure:"top_p" json:"top_p"`
	TopK            int32   `mapstructure:"top_k" json:"top_k"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens" json:"max_output_tokens"`
}

func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Temperature:     0.7,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 8192,
	}
}

// GenerativeClientInterface is a text-completion service treated as a black box.
type GenerativeClientInterface interface {
	GenerateText(ctx context.Context, prompt string, params GenerationParams) (string, error)
	Provider() string
	Model() string
	Close() error
}

// NewGenerativeClient Factory function to create either OpenAI or Gemini client based on config
func NewGenerativeClient(ctx context.Context, provider, apiKey, model string) (GenerativeClientInterface, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderOpenAI:
		client, err := NewOpenAIClient(apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: %q, use 'openai' or 'gemini'", ErrUnsupportedProvider, provider)
	}
}
