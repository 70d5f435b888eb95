package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ollama/ollama/api"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client       *openai.Client
	model        string
	capabilities Capability
}

func NewOpenAIClient(model string) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY: %w", ErrMissingAPIKey)
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return NewOpenAIClientWithConfig(cfg, model, NativeToolCalling), nil
}

func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model string, capabilities Capability) *OpenAIClient {
	return &OpenAIClient{
		client:       openai.NewClientWithConfig(cfg),
		model:        model,
		capabilities: capabilities,
	}
}

func (c *OpenAIClient) Capabilities() Capability {
	return c.capabilities
}

func (c *OpenAIClient) GetModel() string {
	return c.model
}

func (c *OpenAIClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	settings := defaultSettings(c.model, opts)
	settings.tools = nil

	return c.complete(ctx, messages, settings, callback, nil)
}

func (c *OpenAIClient) GenerateInferenceWithTools(
	ctx context.Context,
	messages []Message,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
	opts ...LLMOption,
) error {
	settings := defaultSettings(c.model, opts)
	if c.capabilities&NativeToolCalling == 0 {
		settings.tools = nil
	}

	return c.complete(ctx, messages, settings, contentCallback, toolCallback)
}

func (c *OpenAIClient) complete(
	ctx context.Context,
	messages []Message,
	settings LLMSettings,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
) error {
	request := openai.ChatCompletionRequest{
		Model:       settings.model,
		Messages:    toOpenAIMessages(settings.system, messages),
		Temperature: float32(settings.temperature),
		MaxTokens:   settings.maxTokens,
	}

	if len(settings.tools) > 0 {
		request.Tools = toOpenAITools(settings.tools)
		request.ToolChoice = "auto"
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return fmt.Errorf("no choices in response")
	}

	msg := resp.Choices[0].Message

	if len(msg.ToolCalls) > 0 && toolCallback != nil {
		toolCalls, err := fromOpenAIToolCalls(msg.ToolCalls)
		if err != nil {
			return err
		}
		return toolCallback(toolCalls)
	}

	if msg.Content != "" && contentCallback != nil {
		return contentCallback(msg.Content)
	}

	return nil
}

func toOpenAIMessages(system string, messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if system != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}

	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

func toOpenAITools(tools []api.Tool) []openai.Tool {
	out := make([]openai.Tool, len(tools))
	for i, tool := range tools {
		out[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Function.Name,
				Description: tool.Function.Description,
				Parameters:  tool.Function.Parameters,
			},
		}
	}
	return out
}

func fromOpenAIToolCalls(calls []openai.ToolCall) ([]api.ToolCall, error) {
	out := make([]api.ToolCall, len(calls))
	for i, tc := range calls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, fmt.Errorf("error parsing tool call arguments: %w", err)
			}
		}

		out[i] = api.ToolCall{
			Function: api.ToolCallFunction{
				Name:      tc.Function.Name,
				Arguments: args,
			},
		}
	}
	return out, nil
}
