package agentboot

import (
	"context"
	"errors"

	"github.com/SaiNageswarS/ipl-tweet-agent/llm"
	"github.com/ollama/ollama/api"
)

var (
	ErrToolNotFound = errors.New("tool not found")
	ErrNoModel      = errors.New("agent has no model configured")
)

// AgentConfig holds configuration for the agent
type AgentConfig struct {
	Model        llm.LLMClient
	SystemPrompt string
	Tools        []MCPTool
	MaxTokens    int
	MaxTurns     int
	Temperature  float64
}

// Agent runs a tool-calling conversation loop against a single model.
type Agent struct {
	config AgentConfig
}

// MCPTool wraps an api.Tool and provides a handler for execution
type MCPTool struct {
	api.Tool
	Handler func(ctx context.Context, params api.ToolCallFunctionArguments) (string, error)
}

func (a *Agent) Model() llm.LLMClient {
	return a.config.Model
}

func (a *Agent) Tools() []MCPTool {
	return a.config.Tools
}
