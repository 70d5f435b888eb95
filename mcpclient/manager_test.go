package mcpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
	"github.com/SaiNageswarS/ipl-tweet-agent/toolserver"
)

type toolHandler = func(ctx context.Context, params api.ToolCallFunctionArguments) (string, error)

func newConnectedManager(t *testing.T) *Manager {
	t.Helper()

	ts := server.NewTestServer(toolserver.New(), toolserver.SSEOptions("")...)
	t.Cleanup(ts.Close)

	m := NewManager(ts.URL+toolserver.SSEEndpoint, WithRetry(1, time.Millisecond))
	t.Cleanup(func() { m.Close() })

	_, err := m.Setup(context.Background())
	require.NoError(t, err)
	return m
}

func TestManagerSetupListsTools(t *testing.T) {
	m := newConnectedManager(t)

	tools := m.Tools()
	require.Len(t, tools, 2)

	names := []string{tools[0].Function.Name, tools[1].Function.Name}
	assert.ElementsMatch(t, []string{schema.ViralTweetPromptTool, schema.OneLinerTweetPromptTool}, names)

	for _, tool := range tools {
		assert.Equal(t, "function", tool.Type)
		assert.Equal(t, []string{schema.ContentDumpArg}, tool.Function.Parameters.Required)
		assert.Equal(t, api.PropertyType{"string"}, tool.Function.Parameters.Properties[schema.ContentDumpArg].Type)
		assert.NotNil(t, tool.Handler)
	}

	again, err := m.Setup(context.Background())
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestManagerToolHandlerCallsServer(t *testing.T) {
	m := newConnectedManager(t)

	var viral toolHandler
	for _, tool := range m.Tools() {
		if tool.Function.Name == schema.ViralTweetPromptTool {
			viral = tool.Handler
		}
	}
	require.NotNil(t, viral)

	out, err := viral(context.Background(), api.ToolCallFunctionArguments{
		schema.ContentDumpArg: "Rohit Sharma smashes Starc for a 94m six",
	})
	require.NoError(t, err)

	var resp schema.PromptToolResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Nil(t, resp.Error)
	assert.Contains(t, resp.Prompt, "Rohit Sharma smashes Starc for a 94m six")
}

func TestManagerCallToolErrors(t *testing.T) {
	m := newConnectedManager(t)

	_, err := m.CallTool(context.Background(), schema.OneLinerTweetPromptTool, map[string]any{})
	assert.ErrorContains(t, err, "returned an error")

	_, err = m.CallTool(context.Background(), "unknown_tool", map[string]any{})
	assert.Error(t, err)
}

func TestManagerCloseIsIdempotent(t *testing.T) {
	m := newConnectedManager(t)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, err := m.CallTool(context.Background(), schema.ViralTweetPromptTool, map[string]any{schema.ContentDumpArg: "x"})
	assert.ErrorIs(t, err, ErrClosed)

	_, err = m.Setup(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestManagerCallToolBeforeSetup(t *testing.T) {
	m := NewManager("http://127.0.0.1:1/sse")
	_, err := m.CallTool(context.Background(), schema.ViralTweetPromptTool, nil)
	assert.ErrorContains(t, err, "not set up")
	assert.NoError(t, m.Close())
}

func TestManagerSetupRetriesAndFails(t *testing.T) {
	var attempts atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	m := NewManager(ts.URL+"/sse", WithRetry(3, time.Millisecond))
	defer m.Close()

	_, err := m.Setup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ts.URL)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestManagerSetupHonoursCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	m := NewManager(ts.URL+"/sse", WithRetry(5, time.Hour))
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := m.Setup(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDescribeProperty(t *testing.T) {
	typ, desc := describeProperty(map[string]any{"type": "integer", "description": "count"})
	assert.Equal(t, "integer", typ)
	assert.Equal(t, "count", desc)

	typ, desc = describeProperty("not a schema")
	assert.Equal(t, "string", typ)
	assert.Empty(t, desc)
}

func TestJoinText(t *testing.T) {
	text := joinText([]mcp.Content{
		mcp.NewTextContent("first"),
		mcp.NewImageContent("data", "image/png"),
		&mcp.TextContent{Type: "text", Text: "second"},
	})
	assert.Equal(t, "first\nsecond", text)
}
