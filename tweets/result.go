package tweets

import (
	"strings"
	"time"
	"unicode"

	"github.com/SaiNageswarS/ipl-tweet-agent/llm"
	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
)

// Result is the conversation produced for one tweet.
type Result struct {
	TweetType schema.TweetType
	Messages  []llm.Message
	Error     bool
	Elapsed   time.Duration
}

// Tweet returns the last model-authored message cleaned up for posting. The
// result is always under MaxTweetLength runes.
func (r Result) Tweet() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		m := r.Messages[i]
		if m.Role != llm.RoleAssistant {
			continue
		}
		if tweet := cleanTweet(m.Content); tweet != "" {
			return tweet
		}
	}
	return ""
}

func cleanTweet(s string) string {
	s = strings.TrimSpace(s)
	for _, pair := range [][2]string{{`"`, `"`}, {"“", "”"}, {"'", "'"}} {
		if len(s) >= len(pair[0])+len(pair[1]) && strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) {
			s = strings.TrimSpace(s[len(pair[0]) : len(s)-len(pair[1])])
			break
		}
	}
	return clip(s, schema.MaxTweetLength-1)
}

// clip cuts s to at most max runes, backing off to the last word boundary.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	cut := runes[:max]
	for i := len(cut) - 1; i > 0; i-- {
		if unicode.IsSpace(cut[i]) {
			return strings.TrimRightFunc(string(cut[:i]), unicode.IsSpace)
		}
	}
	return string(cut)
}
