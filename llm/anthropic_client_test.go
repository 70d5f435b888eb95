package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnthropicClientMissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := NewAnthropicClient("claude-sonnet-4-20250514")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestAnthropicClientGenerateInference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var request anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "Be viral", request.System)
		require.Len(t, request.Messages, 2)
		assert.Equal(t, "user", request.Messages[0].Role)
		assert.Equal(t, "assistant", request.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []content{
				{Type: "text", Text: "VINTAGE ROHIT. "},
				{Type: "text", Text: "94 METERS."},
			},
		})
	}))
	defer server.Close()

	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	client, err := NewAnthropicClient("claude-sonnet-4-20250514")
	require.NoError(t, err)
	client.url = server.URL

	var result string
	err = client.GenerateInferenceWithTools(context.Background(),
		[]Message{
			{Role: RoleSystem, Content: "dropped"},
			{Role: RoleUser, Content: "moment"},
			{Role: RoleAssistant, Content: "prompt"},
		},
		func(chunk string) error {
			result = chunk
			return nil
		},
		func(calls []api.ToolCall) error {
			t.Error("anthropic client should never report tool calls")
			return nil
		},
		WithSystemPrompt("Be viral"),
		WithTools([]api.Tool{{Function: api.ToolFunction{Name: "get_prompt"}}}),
	)

	require.NoError(t, err)
	assert.Equal(t, "VINTAGE ROHIT. 94 METERS.", result)
	assert.Equal(t, Capability(0), client.Capabilities())
}

func TestAnthropicClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"type":"error"}`))
	}))
	defer server.Close()

	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	client, err := NewAnthropicClient("claude")
	require.NoError(t, err)
	client.url = server.URL

	err = client.GenerateInference(context.Background(), []Message{{Role: RoleUser, Content: "hi"}},
		func(chunk string) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestAnthropicClientEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropicResponse{})
	}))
	defer server.Close()

	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	client, err := NewAnthropicClient("claude")
	require.NoError(t, err)
	client.url = server.URL

	err = client.GenerateInference(context.Background(), []Message{{Role: RoleUser, Content: "hi"}},
		func(chunk string) error { return nil })
	assert.EqualError(t, err, "no content in response")
}
