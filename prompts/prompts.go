package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
)

//go:embed templates/*
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.md"))

// SystemPrompt returns the system prompt for the tweet agent.
func SystemPrompt() (string, error) {
	return render("agent_system.md", struct {
		ViralTool    string
		OneLinerTool string
		MaxLength    int
	}{
		ViralTool:    schema.ViralTweetPromptTool,
		OneLinerTool: schema.OneLinerTweetPromptTool,
		MaxLength:    schema.MaxTweetLength,
	})
}

// RenderPromptRequest renders the first user turn, which asks the model to
// fetch a structured prompt for the moment through the matching tool.
func RenderPromptRequest(tweetType schema.TweetType, cricketMoment string) (string, error) {
	name := "prompt_request_standard.md"
	if tweetType == schema.TweetTypeOneLiner {
		name = "prompt_request_one_liner.md"
	}

	return render(name, struct {
		CricketMoment string
		Tool          string
	}{
		CricketMoment: cricketMoment,
		Tool:          tweetType.PromptTool(),
	})
}

// TweetGenerationInstruction is the fixed follow-up message appended after the
// structured prompt has been fetched.
func TweetGenerationInstruction(tweetType schema.TweetType) (string, error) {
	name := "tweet_generation_standard.md"
	if tweetType == schema.TweetTypeOneLiner {
		name = "tweet_generation_one_liner.md"
	}

	return render(name, struct{ MaxLength int }{MaxLength: schema.MaxTweetLength})
}

// RenderViralTweetPrompt returns the full viral tweet prompt for a Rohit
// Sharma boundary, with contentDump embedded verbatim.
func RenderViralTweetPrompt(contentDump string) (string, error) {
	return render("viral_tweet_prompt.md", struct{ ContentDump string }{contentDump})
}

// RenderOneLinerTweetPrompt returns the 7-8 word one-liner prompt, with
// contentDump embedded verbatim.
func RenderOneLinerTweetPrompt(contentDump string) (string, error) {
	return render("one_liner_tweet_prompt.md", struct{ ContentDump string }{contentDump})
}

// RenderToolPrompt dispatches to the tool-side template for tweetType.
func RenderToolPrompt(tweetType schema.TweetType, contentDump string) (string, error) {
	if tweetType == schema.TweetTypeOneLiner {
		return RenderOneLinerTweetPrompt(contentDump)
	}
	return RenderViralTweetPrompt(contentDump)
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", name, err)
	}

	return buf.String(), nil
}
