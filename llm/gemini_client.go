package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/ollama/ollama/api"
	"google.golang.org/genai"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY: %w", ErrMissingAPIKey)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init genai client: %w", err)
	}

	return NewGeminiClientFromClient(client, model), nil
}

func NewGeminiClientFromClient(c *genai.Client, model string) *GeminiClient {
	return &GeminiClient{client: c, model: model}
}

func (g *GeminiClient) Capabilities() Capability {
	return NativeToolCalling
}

func (g *GeminiClient) GetModel() string {
	return g.model
}

func (g *GeminiClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	settings := defaultSettings(g.model, opts)
	settings.tools = nil

	return g.generate(ctx, messages, settings, callback, nil)
}

func (g *GeminiClient) GenerateInferenceWithTools(
	ctx context.Context,
	messages []Message,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
	opts ...LLMOption,
) error {
	return g.generate(ctx, messages, defaultSettings(g.model, opts), contentCallback, toolCallback)
}

func (g *GeminiClient) generate(
	ctx context.Context,
	messages []Message,
	settings LLMSettings,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
) error {
	result, err := g.client.Models.GenerateContent(ctx, settings.model, toGeminiContents(messages), toGeminiConfig(settings))
	if err != nil {
		return fmt.Errorf("gemini generation failed: %w", err)
	}

	if calls := result.FunctionCalls(); len(calls) > 0 && toolCallback != nil {
		toolCalls := make([]api.ToolCall, len(calls))
		for i, fc := range calls {
			toolCalls[i] = api.ToolCall{
				Function: api.ToolCallFunction{
					Name:      fc.Name,
					Arguments: fc.Args,
				},
			}
		}
		return toolCallback(toolCalls)
	}

	if text := result.Text(); text != "" && contentCallback != nil {
		return contentCallback(text)
	}

	return nil
}

// toGeminiContents maps chat turns onto Gemini roles; the assistant is "model".
func toGeminiContents(messages []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			continue
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return contents
}

func toGeminiConfig(settings LLMSettings) *genai.GenerateContentConfig {
	temperature := float32(settings.temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(settings.maxTokens),
	}

	if settings.system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(settings.system, genai.RoleUser)
	}

	if len(settings.tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, len(settings.tools))
		for i, tool := range settings.tools {
			decls[i] = &genai.FunctionDeclaration{
				Name:                 tool.Function.Name,
				Description:          tool.Function.Description,
				ParametersJsonSchema: tool.Function.Parameters,
			}
		}
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	return cfg
}
