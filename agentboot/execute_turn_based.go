package agentboot

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/ipl-tweet-agent/llm"
	"github.com/SaiNageswarS/ipl-tweet-agent/memory"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// Invoke runs the conversation until the model answers without requesting
// tools. Tool results are appended as user turns. Once MaxTurns is spent a
// final answer is requested with tools disabled.
func (a *Agent) Invoke(ctx context.Context, reporter ProgressReporter, conversation *memory.Conversation) error {
	if a.config.Model == nil {
		return ErrNoModel
	}

	tools := toAPITools(a.config.Tools)

	for turn := 0; turn < a.config.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		reporter.Send(NewProgressUpdate(StageInference,
			fmt.Sprintf("Turn %d with %s", turn+1, a.config.Model.GetModel())))

		var (
			answer    strings.Builder
			toolCalls []api.ToolCall
		)

		err := a.config.Model.GenerateInferenceWithTools(
			ctx, conversation.Messages,
			func(chunk string) error {
				answer.WriteString(chunk)
				return nil
			},
			func(calls []api.ToolCall) error {
				toolCalls = append(toolCalls, calls...)
				return nil
			},
			a.options(llm.WithTools(tools))...,
		)
		if err != nil {
			logger.Error("Failed to run inference", zap.Int("turn", turn), zap.Error(err))
			reporter.Send(NewStreamError(err.Error(), "inference_failed"))
			return err
		}

		if len(toolCalls) == 0 {
			a.addAnswer(reporter, conversation, answer.String())
			return nil
		}

		for i := range toolCalls {
			a.runToolCall(ctx, reporter, conversation, &toolCalls[i])
		}
	}

	return a.finalAnswer(ctx, reporter, conversation)
}

func (a *Agent) finalAnswer(ctx context.Context, reporter ProgressReporter, conversation *memory.Conversation) error {
	reporter.Send(NewProgressUpdate(StageInference, "Turn limit reached, requesting final answer"))

	var answer strings.Builder
	err := a.config.Model.GenerateInference(
		ctx, conversation.Messages,
		func(chunk string) error {
			answer.WriteString(chunk)
			return nil
		},
		a.options()...,
	)
	if err != nil {
		logger.Error("Failed to run final inference", zap.Error(err))
		reporter.Send(NewStreamError(err.Error(), "inference_failed"))
		return err
	}

	a.addAnswer(reporter, conversation, answer.String())
	return nil
}

// runToolCall records the tool output, or the failure, as a tool result turn.
func (a *Agent) runToolCall(ctx context.Context, reporter ProgressReporter, conversation *memory.Conversation, call *api.ToolCall) {
	result, err := a.RunTool(ctx, reporter, call)
	if err != nil {
		conversation.AddToolResult(fmt.Sprintf("Tool %s failed: %v", call.Function.Name, err))
		return
	}

	conversation.AddToolResult(result)
}

func (a *Agent) addAnswer(reporter ProgressReporter, conversation *memory.Conversation, answer string) {
	if strings.TrimSpace(answer) == "" {
		return
	}

	conversation.AddAssistantMessage(answer)
	reporter.Send(NewProgressUpdate(StageAnswer, fmt.Sprintf("Model answered with %d characters", len(answer))))
}

func (a *Agent) options(extra ...llm.LLMOption) []llm.LLMOption {
	return append([]llm.LLMOption{
		llm.WithMaxTokens(a.config.MaxTokens),
		llm.WithTemperature(a.config.Temperature),
		llm.WithSystemPrompt(a.config.SystemPrompt),
	}, extra...)
}
