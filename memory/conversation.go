package memory

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/ipl-tweet-agent/llm"
)

// Conversation is the ordered chat history handed to the agent.
type Conversation struct {
	ID       string
	Messages []llm.Message
}

func NewConversation(id string) *Conversation {
	return &Conversation{ID: id}
}

func (m *Conversation) AddUserMessage(content string) {
	m.Messages = append(m.Messages, llm.Message{Role: llm.RoleUser, Content: content})
}

func (m *Conversation) AddAssistantMessage(content string) {
	m.Messages = append(m.Messages, llm.Message{Role: llm.RoleAssistant, Content: content})
}

func (m *Conversation) AddToolResult(content string) {
	m.Messages = append(m.Messages, llm.Message{Role: llm.RoleUser, Content: content, IsToolResult: true})
}

// LastAssistantMessage returns the most recent non-empty model-authored message.
// The scan is in-memory, so it still answers after ctx is canceled.
func (m *Conversation) LastAssistantMessage(ctx context.Context) (string, bool) {
	authored, err := linq.Pipe2(
		linq.FromSlice(context.WithoutCancel(ctx), m.Messages),

		linq.Where(func(msg llm.Message) bool {
			return msg.Role == llm.RoleAssistant && strings.TrimSpace(msg.Content) != ""
		}),

		linq.ToSlice[llm.Message](),
	)
	if err != nil || len(authored) == 0 {
		return "", false
	}

	return authored[len(authored)-1].Content, true
}
