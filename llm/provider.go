package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderOpenAI    = "openai"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderGemini    = "gemini"
)

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4o",
	ProviderGroq:      "llama-3.3-70b-versatile",
	ProviderAnthropic: "claude-sonnet-4-20250514",
	ProviderOllama:    "gpt-oss:20b",
	ProviderGemini:    "gemini-2.5-flash",
}

// NewClient builds the LLMClient for provider. An empty provider means
// OpenAI and an empty model picks the provider default.
func NewClient(ctx context.Context, provider, model string) (LLMClient, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = ProviderOpenAI
	}

	if model == "" {
		model = defaultModels[provider]
	}

	switch provider {
	case ProviderOpenAI:
		return asClient(NewOpenAIClient(model))
	case ProviderGroq:
		return asClient(NewGroqClient(model))
	case ProviderAnthropic:
		return asClient(NewAnthropicClient(model))
	case ProviderOllama:
		return asClient(NewOllamaClient(model))
	case ProviderGemini:
		return asClient(NewGeminiClient(ctx, model))
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}

// asClient keeps a failed constructor from yielding a non-nil interface
// wrapping a nil pointer.
func asClient[T LLMClient](client T, err error) (LLMClient, error) {
	if err != nil {
		return nil, err
	}
	return client, nil
}
