package tweets

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/SaiNageswarS/ipl-tweet-agent/llm"
)

func TestResultTweet(t *testing.T) {
	long := strings.Repeat("sixer ", 60)

	tests := []struct {
		name     string
		messages []llm.Message
		want     string
	}{
		{"no messages", nil, ""},
		{"only user", []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, ""},
		{"trims whitespace", []llm.Message{{Role: llm.RoleAssistant, Content: "  SIX!  \n"}}, "SIX!"},
		{"strips double quotes", []llm.Message{{Role: llm.RoleAssistant, Content: `"SIX!"`}}, "SIX!"},
		{"strips curly quotes", []llm.Message{{Role: llm.RoleAssistant, Content: "“SIX!”"}}, "SIX!"},
		{"keeps inner quotes", []llm.Message{{Role: llm.RoleAssistant, Content: `He said "six"`}}, `He said "six"`},
		{"skips blank last message", []llm.Message{
			{Role: llm.RoleAssistant, Content: "tweet"},
			{Role: llm.RoleAssistant, Content: " "},
		}, "tweet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Result{Messages: tt.messages}.Tweet())
		})
	}

	clipped := Result{Messages: []llm.Message{{Role: llm.RoleAssistant, Content: long}}}.Tweet()
	assert.Less(t, utf8.RuneCountInString(clipped), 280)
	assert.True(t, strings.HasSuffix(clipped, "sixer"))
}

func TestResultTweetStaysUnderLimit(t *testing.T) {
	exact := strings.Repeat("x", 280)
	tweet := Result{Messages: []llm.Message{{Role: llm.RoleAssistant, Content: exact}}}.Tweet()
	assert.Equal(t, 279, utf8.RuneCountInString(tweet))

	fits := strings.Repeat("🏏", 279)
	assert.Equal(t, fits, Result{Messages: []llm.Message{{Role: llm.RoleAssistant, Content: fits}}}.Tweet())
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 280))
	assert.Equal(t, "ab cd", clip("ab cd ef", 6))
	assert.Equal(t, "abcdef", clip("abcdefgh", 6))
	assert.Equal(t, "🔥🔥", clip("🔥🔥🔥", 2))
}
