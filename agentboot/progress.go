package agentboot

import (
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

type Stage string

const (
	StageInference              Stage = "inference"
	StageToolExecutionStarting  Stage = "tool_execution_starting"
	StageToolExecutionCompleted Stage = "tool_execution_completed"
	StageAnswer                 Stage = "answer"
	StageError                  Stage = "error"
)

// ProgressEvent is a single step of an agent run.
type ProgressEvent struct {
	Stage     Stage
	Message   string
	ToolName  string
	ErrorCode string
	Timestamp int64
}

// ProgressReporter is an interface for reporting agent execution progress
type ProgressReporter interface {
	Send(event *ProgressEvent) error
}

// NoOpProgressReporter implements ProgressReporter with no-op operations
type NoOpProgressReporter struct{}

func (r *NoOpProgressReporter) Send(event *ProgressEvent) error {
	return nil
}

// LogProgressReporter writes every event as a structured log line.
type LogProgressReporter struct {
	RequestID string
}

func (r *LogProgressReporter) Send(event *ProgressEvent) error {
	fields := []zap.Field{
		zap.String("request_id", r.RequestID),
		zap.String("stage", string(event.Stage)),
	}
	if event.ToolName != "" {
		fields = append(fields, zap.String("tool", event.ToolName))
	}

	if event.Stage == StageError {
		logger.Error(event.Message, append(fields, zap.String("error_code", event.ErrorCode))...)
		return nil
	}

	logger.Info(event.Message, fields...)
	return nil
}

func NewProgressUpdate(stage Stage, message string) *ProgressEvent {
	return &ProgressEvent{
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}

func NewToolProgress(stage Stage, toolName, message string) *ProgressEvent {
	event := NewProgressUpdate(stage, message)
	event.ToolName = toolName
	return event
}

func NewStreamError(message, code string) *ProgressEvent {
	event := NewProgressUpdate(StageError, message)
	event.ErrorCode = code
	return event
}
