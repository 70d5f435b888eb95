package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaClient runs chat completions against a local or remote Ollama server.
type OllamaClient struct {
	client *api.Client
	model  string
}

// NewOllamaClient builds a client from OLLAMA_HOST (defaults to localhost).
func NewOllamaClient(model string) (*OllamaClient, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return NewOllamaClientFromClient(client, model), nil
}

func NewOllamaClientFromClient(client *api.Client, model string) *OllamaClient {
	return &OllamaClient{client: client, model: model}
}

func (c *OllamaClient) Capabilities() Capability {
	return NativeToolCalling
}

func (c *OllamaClient) GetModel() string {
	return c.model
}

func (c *OllamaClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	settings := defaultSettings(c.model, opts)
	settings.tools = nil

	return c.chat(ctx, messages, settings, callback, nil)
}

func (c *OllamaClient) GenerateInferenceWithTools(
	ctx context.Context,
	messages []Message,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
	opts ...LLMOption,
) error {
	return c.chat(ctx, messages, defaultSettings(c.model, opts), contentCallback, toolCallback)
}

func (c *OllamaClient) chat(
	ctx context.Context,
	messages []Message,
	settings LLMSettings,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
) error {
	stream := settings.stream
	req := &api.ChatRequest{
		Model:    settings.model,
		Messages: toOllamaMessages(settings.system, messages),
		Stream:   &stream,
		Tools:    settings.tools,
		Options: map[string]any{
			"temperature": settings.temperature,
			"num_predict": settings.maxTokens,
		},
	}

	var (
		content   strings.Builder
		toolCalls []api.ToolCall
	)

	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		toolCalls = append(toolCalls, resp.Message.ToolCalls...)

		if resp.Message.Content == "" {
			return nil
		}
		if stream && contentCallback != nil {
			return contentCallback(resp.Message.Content)
		}
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return fmt.Errorf("ollama chat failed: %w", err)
	}

	if len(toolCalls) > 0 && toolCallback != nil {
		return toolCallback(toolCalls)
	}

	if content.Len() > 0 && contentCallback != nil {
		return contentCallback(content.String())
	}

	return nil
}

func toOllamaMessages(system string, messages []Message) []api.Message {
	out := make([]api.Message, 0, len(messages)+1)
	if system != "" {
		out = append(out, api.Message{Role: RoleSystem, Content: system})
	}

	for _, m := range messages {
		out = append(out, api.Message{Role: m.Role, Content: m.Content})
	}
	return out
}
