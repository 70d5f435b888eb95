package agentboot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// RunTool executes the tool named by selection and returns its raw output.
func (a *Agent) RunTool(ctx context.Context, reporter ProgressReporter, selection *api.ToolCall) (string, error) {
	name := selection.Function.Name

	tool := findMCPToolByName(a.config.Tools, name)
	if tool == nil || tool.Handler == nil {
		reporter.Send(NewStreamError(fmt.Sprintf("tool %s is not registered", name), "tool_not_found"))
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	inputs := formatToolInputsToMarkdown(name, selection.Function.Arguments)
	reporter.Send(NewToolProgress(StageToolExecutionStarting, name, "Running "+inputs))

	result, err := tool.Handler(ctx, selection.Function.Arguments)
	if err != nil {
		logger.Error("Tool execution failed", zap.String("tool", name), zap.Error(err))
		reporter.Send(NewStreamError(err.Error(), "tool_execution_failed"))
		return "", err
	}

	reporter.Send(NewToolProgress(StageToolExecutionCompleted, name,
		fmt.Sprintf("Tool %s completed successfully", name)))
	return result, nil
}

// formatToolInputsToMarkdown renders a tool call as markdown for progress logs.
func formatToolInputsToMarkdown(toolName string, params api.ToolCallFunctionArguments) string {
	if len(params) == 0 {
		return fmt.Sprintf("Tool: `%s` (no parameters)", mdEscape(toolName))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tool: `%s`\n\n", mdEscape(toolName)))

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("Parameters:\n")
	for _, k := range keys {
		var valueStr string

		switch v := params[k].(type) {
		case string:
			valueStr = v
		case []string:
			valueStr = strings.Join(v, ", ")
		case []any:
			strs := make([]string, len(v))
			for i, item := range v {
				strs[i] = fmt.Sprintf("%v", item)
			}
			valueStr = strings.Join(strs, ", ")
		default:
			valueStr = fmt.Sprintf("%v", v)
		}

		b.WriteString(fmt.Sprintf("- **%s**: %s\n", mdEscape(k), mdEscape(valueStr)))
	}

	return b.String()
}

// Minimal Markdown escaper for inline syntax.
func mdEscape(s string) string {
	if s == "" {
		return s
	}
	return mdReplacer.Replace(s)
}

var mdReplacer = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
	"<", "&lt;",
	">", "&gt;",
)
