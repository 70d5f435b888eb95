package metrics

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
)

const defaultClientTimeout = 10 * time.Second

// Client pushes metrics and log events to the metrics service. Every call
// reports success as a bool; failures are logged and never returned.
type Client struct {
	baseURL string
	service string
	timeout time.Duration
}

func NewClient(baseURL, service string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		service: service,
		timeout: defaultClientTimeout,
	}
}

func (c *Client) RecordTweetGeneration(ctx context.Context, requestID string, tweetType schema.TweetType, generationTime time.Duration, tweet string) bool {
	payload := schema.MetricsPayload{
		RequestID:             requestID,
		TweetType:             tweetType.String(),
		GenerationTimeSeconds: generationTime.Seconds(),
		Characters:            utf8.RuneCountInString(tweet),
		Timestamp:             time.Now().Format(isoTimestamp),
	}

	ok := c.post(ctx, "/record", payload)
	if ok {
		logger.Info("Metrics recorded", zap.String("request_id", requestID))
	}
	return ok
}

func (c *Client) LogEvent(ctx context.Context, level schema.LogLevel, message, requestID string, data map[string]any) bool {
	if data == nil {
		data = map[string]any{}
	}

	return c.post(ctx, "/logs", schema.LogEvent{
		Level:          level,
		Message:        message,
		Timestamp:      time.Now().Format(isoTimestamp),
		Service:        c.service,
		RequestID:      requestID,
		AdditionalData: data,
	})
}

func (c *Client) UpdateHealthStatus(ctx context.Context, healthy bool) bool {
	ok := c.post(ctx, "/health/update", healthy)
	if ok {
		logger.Info("Health status updated", zap.Bool("healthy", healthy))
	}
	return ok
}

func (c *Client) post(ctx context.Context, path string, body any) bool {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			logger.Error("Metrics request skipped", zap.String("path", path), zap.Error(ctx.Err()))
			return false
		}
		timeout = min(timeout, remaining)
	}

	agent := fiber.Post(c.baseURL + path).JSON(body).Timeout(timeout)
	code, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		logger.Error("Metrics request failed", zap.String("path", path), zap.Errors("errors", errs))
		return false
	}

	if code != fiber.StatusOK {
		logger.Error("Metrics service rejected request",
			zap.String("path", path), zap.Int("status", code), zap.ByteString("body", respBody))
		return false
	}
	return true
}
