package agentboot

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMCPToolBuilder(t *testing.T) {
	builder := NewMCPToolBuilder("test-tool", "A test tool")

	assert.Equal(t, "function", builder.tool.Type)
	assert.Equal(t, "test-tool", builder.tool.Function.Name)
	assert.Equal(t, "A test tool", builder.tool.Function.Description)
	assert.Equal(t, "object", builder.tool.Function.Parameters.Type)
	assert.Empty(t, builder.tool.Function.Parameters.Properties)
	assert.Nil(t, builder.tool.Function.Parameters.Required)
}

func TestMCPToolBuilderParams(t *testing.T) {
	tool := NewMCPToolBuilder("test", "test").
		StringParam("content_dump", "The moment", true).
		Param("limit", "integer", "Optional limit", false).
		StringParam("content_dump", "Repeated", true).
		Build()

	props := tool.Function.Parameters.Properties
	require.Len(t, props, 2)
	assert.Equal(t, api.PropertyType{"string"}, props["content_dump"].Type)
	assert.Equal(t, "Repeated", props["content_dump"].Description)
	assert.Equal(t, api.PropertyType{"integer"}, props["limit"].Type)
	assert.Equal(t, []string{"content_dump"}, tool.Function.Parameters.Required)
}

func TestMCPToolBuilderBuildRequiredNeverNil(t *testing.T) {
	tool := NewMCPToolBuilder("health", "no args").Build()

	require.NotNil(t, tool.Function.Parameters.Required)

	raw, err := json.Marshal(tool.Tool)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"required":[]`)
}

func TestMCPToolBuilderWithHandler(t *testing.T) {
	tool := NewMCPToolBuilder("echo", "echoes").
		WithHandler(func(ctx context.Context, params api.ToolCallFunctionArguments) (string, error) {
			return params["v"].(string), nil
		}).
		Build()

	out, err := tool.Handler(context.Background(), api.ToolCallFunctionArguments{"v": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}
