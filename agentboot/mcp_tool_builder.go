package agentboot

import (
	"context"
	"slices"

	"github.com/ollama/ollama/api"
)

// MCPToolBuilder defines the function schema of an MCPTool.
type MCPToolBuilder struct {
	tool MCPTool
}

func NewMCPToolBuilder(name, description string) *MCPToolBuilder {
	b := &MCPToolBuilder{
		tool: MCPTool{
			Tool: api.Tool{
				Type: "function",
				Function: api.ToolFunction{
					Name:        name,
					Description: description,
				},
			},
		},
	}

	b.tool.Function.Parameters.Type = "object"
	b.tool.Function.Parameters.Properties = make(map[string]api.ToolProperty, 4)
	return b
}

func (b *MCPToolBuilder) StringParam(name, desc string, required bool) *MCPToolBuilder {
	return b.Param(name, "string", desc, required)
}

// Param adds a parameter of an arbitrary JSON schema type.
func (b *MCPToolBuilder) Param(name, jsonType, desc string, required bool) *MCPToolBuilder {
	prop := api.ToolProperty{
		Type:        api.PropertyType{jsonType},
		Description: desc,
	}

	b.setProp(name, prop, required)
	return b
}

func (b *MCPToolBuilder) WithHandler(fn func(ctx context.Context, params api.ToolCallFunctionArguments) (string, error)) *MCPToolBuilder {
	b.tool.Handler = fn
	return b
}

// Build returns the tool. Required is never nil so it serialises as [].
func (b *MCPToolBuilder) Build() MCPTool {
	if b.tool.Function.Parameters.Required == nil {
		b.tool.Function.Parameters.Required = []string{}
	}
	return b.tool
}

func (b *MCPToolBuilder) setProp(name string, p api.ToolProperty, required bool) {
	b.tool.Function.Parameters.Properties[name] = p
	if required {
		req := b.tool.Function.Parameters.Required
		if !slices.Contains(req, name) {
			b.tool.Function.Parameters.Required = append(req, name)
		}
	}
}
