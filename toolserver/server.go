package toolserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
)

const (
	ServerName    = "TweetTools"
	ServerVersion = "1.0.0"

	SSEEndpoint     = "/sse"
	MessageEndpoint = "/messages/"

	ViralTweetPrompt    = "rohit_sharma_viral_tweet"
	OneLinerTweetPrompt = "rohit_sharma_one_liner_tweet"
)

// New builds the MCP server exposing the tweet prompt tools and prompts.
func New() *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	viralTool := mcp.NewTool(
		schema.ViralTweetPromptTool,
		mcp.WithDescription("Returns a structured prompt for writing a viral, hype-filled tweet about a Rohit Sharma boundary. Pass the raw cricket moment as content_dump."),
		mcp.WithString(schema.ContentDumpArg,
			mcp.Description("Raw description of the cricket moment"),
			mcp.Required(),
		),
	)

	oneLinerTool := mcp.NewTool(
		schema.OneLinerTweetPromptTool,
		mcp.WithDescription("Returns a structured prompt for writing a punchy 7-8 word one-liner tweet about a Rohit Sharma boundary. Pass the raw cricket moment as content_dump."),
		mcp.WithString(schema.ContentDumpArg,
			mcp.Description("Raw description of the cricket moment"),
			mcp.Required(),
		),
	)

	s.AddTool(viralTool, HandleViralTweetPrompt)
	s.AddTool(oneLinerTool, HandleOneLinerTweetPrompt)

	s.AddPrompt(newTweetPrompt(ViralTweetPrompt, "Viral tweet prompt for a Rohit Sharma boundary"), HandleViralPrompt)
	s.AddPrompt(newTweetPrompt(OneLinerTweetPrompt, "One-liner tweet prompt for a Rohit Sharma boundary"), HandleOneLinerPrompt)

	return s
}

// NewSSEServer mounts s on the SSE transport. baseURL may be empty when the
// server is reached on the address it listens on.
func NewSSEServer(s *server.MCPServer, baseURL string) *server.SSEServer {
	return server.NewSSEServer(s, SSEOptions(baseURL)...)
}

func SSEOptions(baseURL string) []server.SSEOption {
	opts := []server.SSEOption{
		server.WithSSEEndpoint(SSEEndpoint),
		server.WithMessageEndpoint(MessageEndpoint),
	}
	if baseURL != "" {
		opts = append(opts, server.WithBaseURL(baseURL))
	}
	return opts
}

func newTweetPrompt(name, description string) mcp.Prompt {
	return mcp.NewPrompt(
		name,
		mcp.WithPromptDescription(description),
		mcp.WithArgument(schema.ContentDumpArg,
			mcp.ArgumentDescription("Raw description of the cricket moment"),
			mcp.RequiredArgument(),
		),
	)
}
