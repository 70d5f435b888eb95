package tweets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"

	"github.com/SaiNageswarS/ipl-tweet-agent/agentboot"
	"github.com/SaiNageswarS/ipl-tweet-agent/llm"
	"github.com/SaiNageswarS/ipl-tweet-agent/memory"
	"github.com/SaiNageswarS/ipl-tweet-agent/prompts"
	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
)

var (
	ErrNoOutput = errors.New("model produced no output")
	ErrNoPrompt = fmt.Errorf("%w for the prompt step", ErrNoOutput)
)

const noPromptMessage = "Error: Could not generate prompt for the cricket moment."

// ToolSource supplies the prompt tools, typically an MCP client manager.
type ToolSource interface {
	Setup(ctx context.Context) ([]agentboot.MCPTool, error)
	Close() error
}

// ModelFactory builds the chat model used by the agent.
type ModelFactory func(ctx context.Context) (llm.LLMClient, error)

type Option func(*Generator)

func WithMaxTurns(n int) Option {
	return func(g *Generator) { g.maxTurns = n }
}

func WithReporter(r agentboot.ProgressReporter) Option {
	return func(g *Generator) { g.reporter = r }
}

// Generator runs the two-step prompt then tweet conversation. One agent is
// built lazily per Generator.
type Generator struct {
	tools    ToolSource
	newModel ModelFactory
	maxTurns int
	reporter agentboot.ProgressReporter

	mu    sync.Mutex
	agent *agentboot.Agent
}

func NewGenerator(tools ToolSource, newModel ModelFactory, opts ...Option) *Generator {
	g := &Generator{
		tools:    tools,
		newModel: newModel,
		maxTurns: 5,
		reporter: &agentboot.NoOpProgressReporter{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Setup connects to the tool source and builds the agent.
func (g *Generator) Setup(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.agent != nil {
		return nil
	}

	tools, err := g.tools.Setup(ctx)
	if err != nil {
		return fmt.Errorf("load tools: %w", err)
	}

	model, err := g.newModel(ctx)
	if err != nil {
		return fmt.Errorf("create model: %w", err)
	}

	system, err := prompts.SystemPrompt()
	if err != nil {
		return err
	}

	g.agent = agentboot.NewAgentBuilder().
		WithModel(model).
		WithSystemPrompt(system).
		AddTools(tools...).
		WithMaxTurns(g.maxTurns).
		Build()

	logger.Info("Tweet agent ready", zap.String("model", model.GetModel()), zap.Int("tools", len(tools)))
	return nil
}

// GenerateTweet never fails; errors come back as a Result with Error set.
func (g *Generator) GenerateTweet(ctx context.Context, moment string, tweetType schema.TweetType) Result {
	start := time.Now()

	messages, err := g.generate(ctx, moment, tweetType)
	if err != nil {
		return g.errorResult(moment, tweetType, err, time.Since(start))
	}

	return Result{TweetType: tweetType, Messages: messages, Elapsed: time.Since(start)}
}

func (g *Generator) generate(ctx context.Context, moment string, tweetType schema.TweetType) ([]llm.Message, error) {
	if err := g.Setup(ctx); err != nil {
		return nil, err
	}

	request, err := prompts.RenderPromptRequest(tweetType, moment)
	if err != nil {
		return nil, err
	}

	conversation := memory.NewConversation(string(tweetType))
	conversation.AddUserMessage(request)

	if g.agent.Model().Capabilities()&llm.NativeToolCalling == 0 {
		g.prefetchPrompt(ctx, conversation, moment, tweetType)
	}

	if err := g.agent.Invoke(ctx, g.reporter, conversation); err != nil {
		return nil, err
	}
	if _, ok := conversation.LastAssistantMessage(ctx); !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoPrompt
	}

	instruction, err := prompts.TweetGenerationInstruction(tweetType)
	if err != nil {
		return nil, err
	}
	conversation.AddUserMessage(instruction)
	answered := len(conversation.Messages)

	if err := g.agent.Invoke(ctx, g.reporter, conversation); err != nil {
		return nil, err
	}
	if len(conversation.Messages) == answered || conversation.Messages[len(conversation.Messages)-1].Role != llm.RoleAssistant {
		return nil, fmt.Errorf("%w for the tweet step", ErrNoOutput)
	}

	return conversation.Messages, nil
}

// prefetchPrompt runs the prompt tool on behalf of models that cannot call
// tools themselves. A failure leaves the model to answer without it.
func (g *Generator) prefetchPrompt(ctx context.Context, conversation *memory.Conversation, moment string, tweetType schema.TweetType) {
	call := api.ToolCall{Function: api.ToolCallFunction{
		Name:      tweetType.PromptTool(),
		Arguments: api.ToolCallFunctionArguments{schema.ContentDumpArg: moment},
	}}

	result, err := g.agent.RunTool(ctx, g.reporter, &call)
	if err != nil {
		logger.Error("Failed to prefetch tweet prompt", zap.String("tool", call.Function.Name), zap.Error(err))
		return
	}
	conversation.AddToolResult(result)
}

func (g *Generator) errorResult(moment string, tweetType schema.TweetType, err error, elapsed time.Duration) Result {
	message := "An error occurred while generating the tweet: " + err.Error()
	if errors.Is(err, ErrNoPrompt) {
		message = noPromptMessage
	}

	logger.Error("Tweet generation failed",
		zap.String("tweet_type", tweetType.String()),
		zap.Error(err),
		zap.Stack("stack"))

	return Result{
		TweetType: tweetType,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Generate viral tweet for cricket moment: " + moment},
			{Role: llm.RoleAssistant, Content: message},
		},
		Error:   true,
		Elapsed: elapsed,
	}
}

// Generate produces the requested tweet type, or standard then one-liner
// when both is set.
func (g *Generator) Generate(ctx context.Context, moment string, tweetType schema.TweetType, both bool) []Result {
	types := []schema.TweetType{tweetType}
	if both {
		types = []schema.TweetType{schema.TweetTypeStandard, schema.TweetTypeOneLiner}
	}

	results := make([]Result, 0, len(types))
	for _, t := range types {
		logger.Info("Generating tweet", zap.String("tweet_type", t.String()))
		results = append(results, g.GenerateTweet(ctx, moment, t))
	}
	return results
}

func (g *Generator) Close() error {
	return g.tools.Close()
}
