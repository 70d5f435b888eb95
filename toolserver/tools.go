package toolserver

import (
	"context"
	"encoding/json"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/SaiNageswarS/ipl-tweet-agent/prompts"
	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
)

func HandleViralTweetPrompt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return handlePromptTool(req, schema.TweetTypeStandard)
}

func HandleOneLinerTweetPrompt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return handlePromptTool(req, schema.TweetTypeOneLiner)
}

// handlePromptTool answers with a PromptToolResponse document. Rendering
// failures are reported inside the document rather than as tool errors.
func handlePromptTool(req mcp.CallToolRequest, tweetType schema.TweetType) (*mcp.CallToolResult, error) {
	contentDump, err := req.RequireString(schema.ContentDumpArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response schema.PromptToolResponse
	prompt, err := prompts.RenderToolPrompt(tweetType, contentDump)
	if err != nil {
		logger.Error("Failed to render tweet prompt",
			zap.String("tool", tweetType.PromptTool()), zap.Error(err))
		msg := err.Error()
		response.Error = &msg
	} else {
		response.Prompt = prompt
	}

	body, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}

	logger.Info("Served tweet prompt",
		zap.String("tool", tweetType.PromptTool()),
		zap.Int("content_length", len(contentDump)))
	return mcp.NewToolResultText(string(body)), nil
}
