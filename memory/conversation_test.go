package memory

import (
	"context"
	"testing"

	"github.com/SaiNageswarS/ipl-tweet-agent/llm"
	"github.com/stretchr/testify/assert"
)

func TestConversation_AddMessages(t *testing.T) {
	t.Run("AddUserMessage", func(t *testing.T) {
		conversation := NewConversation("req-1")
		conversation.AddUserMessage("Rohit hits a six")

		assert.Equal(t, "req-1", conversation.ID)
		assert.Len(t, conversation.Messages, 1)
		assert.Equal(t, "user", conversation.Messages[0].Role)
		assert.Equal(t, "Rohit hits a six", conversation.Messages[0].Content)
		assert.False(t, conversation.Messages[0].IsToolResult)
	})

	t.Run("AddAssistantMessage", func(t *testing.T) {
		conversation := &Conversation{}
		conversation.AddAssistantMessage("HITMAN!")

		assert.Len(t, conversation.Messages, 1)
		assert.Equal(t, "assistant", conversation.Messages[0].Role)
		assert.Equal(t, "HITMAN!", conversation.Messages[0].Content)
	})

	t.Run("AddToolResult", func(t *testing.T) {
		conversation := &Conversation{}
		conversation.AddToolResult(`{"prompt":"...","error":null}`)

		assert.Len(t, conversation.Messages, 1)
		assert.Equal(t, "user", conversation.Messages[0].Role)
		assert.True(t, conversation.Messages[0].IsToolResult)
	})
}

func TestConversation_LastAssistantMessage(t *testing.T) {
	tests := []struct {
		name     string
		messages []llm.Message
		want     string
		found    bool
	}{
		{
			name:     "empty conversation",
			messages: nil,
			found:    false,
		},
		{
			name: "only user turns",
			messages: []llm.Message{
				{Role: "user", Content: "moment"},
				{Role: "user", Content: "tool output", IsToolResult: true},
			},
			found: false,
		},
		{
			name: "picks the latest model message",
			messages: []llm.Message{
				{Role: "user", Content: "moment"},
				{Role: "assistant", Content: "prompt"},
				{Role: "user", Content: "now write the tweet"},
				{Role: "assistant", Content: "the tweet"},
			},
			want:  "the tweet",
			found: true,
		},
		{
			name: "skips blank model messages",
			messages: []llm.Message{
				{Role: "assistant", Content: "prompt"},
				{Role: "assistant", Content: "   "},
			},
			want:  "prompt",
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conversation := &Conversation{Messages: tt.messages}
			got, ok := conversation.LastAssistantMessage(context.Background())
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConversation_LastAssistantMessageCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewConversation("standard")
	c.AddUserMessage("moment")
	c.AddAssistantMessage("PROMPT")

	msg, ok := c.LastAssistantMessage(ctx)
	assert.True(t, ok)
	assert.Equal(t, "PROMPT", msg)
}
