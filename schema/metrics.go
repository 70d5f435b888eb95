package schema

// MetricsPayload is posted to the metrics service once per generated tweet.
type MetricsPayload struct {
	RequestID             string  `json:"request_id"`
	TweetType             string  `json:"tweet_type"`
	GenerationTimeSeconds float64 `json:"generation_time_seconds"`
	Characters            int     `json:"characters"`
	Timestamp             string  `json:"timestamp"`
}

type LogLevel string

const (
	LogLevelDebug    LogLevel = "debug"
	LogLevelInfo     LogLevel = "info"
	LogLevelWarning  LogLevel = "warning"
	LogLevelError    LogLevel = "error"
	LogLevelCritical LogLevel = "critical"
)

// LogEvent is a structured log line forwarded to the metrics service.
type LogEvent struct {
	Level          LogLevel       `json:"level"`
	Message        string         `json:"message"`
	Timestamp      string         `json:"timestamp"`
	Service        string         `json:"service"`
	RequestID      string         `json:"request_id,omitempty"`
	AdditionalData map[string]any `json:"additional_data,omitempty"`
}

// RecordedAck is what the metrics service answers to /record and /logs.
type RecordedAck struct {
	Status     string `json:"status"`
	RecordedAt string `json:"recorded_at"`
}
