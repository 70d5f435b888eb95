package toolserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SaiNageswarS/ipl-tweet-agent/prompts"
	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
)

func HandleViralPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return handleTweetPrompt(req, schema.TweetTypeStandard, "Viral tweet prompt for a Rohit Sharma boundary")
}

func HandleOneLinerPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return handleTweetPrompt(req, schema.TweetTypeOneLiner, "One-liner tweet prompt for a Rohit Sharma boundary")
}

func handleTweetPrompt(req mcp.GetPromptRequest, tweetType schema.TweetType, description string) (*mcp.GetPromptResult, error) {
	contentDump, ok := req.Params.Arguments[schema.ContentDumpArg]
	if !ok {
		return nil, fmt.Errorf("missing required argument %q", schema.ContentDumpArg)
	}

	promptText, err := prompts.RenderToolPrompt(tweetType, contentDump)
	if err != nil {
		return nil, err
	}

	return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
		mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(promptText)),
	}), nil
}
