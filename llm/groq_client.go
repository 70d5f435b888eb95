package llm

import (
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Models that support tool calling based on Groq documentation
var groqToolSupportedModels = []string{
	"llama-3.3-70b-versatile",
	"llama-3.1-8b-instant",
	"openai/gpt-oss-20b",
	"openai/gpt-oss-120b",
	"meta-llama/llama-4-scout-17b-16e-instruct",
	"meta-llama/llama-4-maverick-17b-128e-instruct",
	"moonshotai/kimi-k2-instruct",
	"moonshotai/kimi-k2-instruct-0905",
}

// NewGroqClient returns an OpenAI-compatible client pointed at Groq.
func NewGroqClient(model string) (*OpenAIClient, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY: %w", ErrMissingAPIKey)
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL

	return NewOpenAIClientWithConfig(cfg, model, groqCapabilities(model)), nil
}

func groqCapabilities(model string) Capability {
	for _, supportedModel := range groqToolSupportedModels {
		if strings.Contains(model, supportedModel) {
			return NativeToolCalling
		}
	}

	return 0
}
