package schema

import (
	"errors"
	"fmt"
	"strings"
)

type TweetType string

const (
	TweetTypeStandard TweetType = "standard"
	TweetTypeOneLiner TweetType = "one_liner"
)

// MaxTweetLength is the X/Twitter post limit in characters.
const MaxTweetLength = 280

var ErrInvalidTweetType = errors.New("invalid tweet type")

// ParseTweetType maps the wire value to a TweetType. An empty value is the
// request default (standard).
func ParseTweetType(s string) (TweetType, error) {
	switch TweetType(strings.TrimSpace(s)) {
	case "", TweetTypeStandard:
		return TweetTypeStandard, nil
	case TweetTypeOneLiner:
		return TweetTypeOneLiner, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidTweetType, s, TweetTypeStandard, TweetTypeOneLiner)
	}
}

// PromptTool returns the name of the tool-server function that builds the
// structured prompt for this tweet type.
func (t TweetType) PromptTool() string {
	if t == TweetTypeOneLiner {
		return OneLinerTweetPromptTool
	}
	return ViralTweetPromptTool
}

func (t TweetType) String() string {
	return string(t)
}

// TweetRequest is the body of POST /v1/tweets.
type TweetRequest struct {
	CricketMoment     string `json:"cricket_moment"`
	TweetType         string `json:"tweet_type,omitempty"`
	GenerateBothTypes bool   `json:"generate_both_types,omitempty"`
}

// Validate checks field presence and returns the resolved tweet type.
func (r *TweetRequest) Validate() (TweetType, error) {
	if strings.TrimSpace(r.CricketMoment) == "" {
		return "", errors.New("cricket_moment is required")
	}

	return ParseTweetType(r.TweetType)
}

type TweetContent struct {
	Content   string    `json:"content"`
	TweetType TweetType `json:"tweet_type"`
}

type TweetResponse struct {
	Tweets    []TweetContent `json:"tweets"`
	RequestID string         `json:"request_id"`
	Status    string         `json:"status"`
}

const (
	StatusSuccess = "success"
	StatusPartial = "partial"
)
