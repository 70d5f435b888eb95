package mcpclient

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"

	"github.com/SaiNageswarS/ipl-tweet-agent/agentboot"
)

var ErrClosed = errors.New("mcp client manager is closed")

// Manager owns one SSE session with the tool server and exposes its tools
// as agent tools.
type Manager struct {
	url        string
	maxRetries int
	baseDelay  time.Duration

	mu     sync.Mutex
	client *client.Client
	cancel context.CancelFunc
	tools  []agentboot.MCPTool
	closed bool
}

type Option func(*Manager)

// WithRetry sets the number of connection attempts and the first backoff delay.
func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(m *Manager) {
		if attempts > 0 {
			m.maxRetries = attempts - 1
		}
		m.baseDelay = baseDelay
	}
}

func NewManager(sseURL string, opts ...Option) *Manager {
	m := &Manager{
		url:        sseURL,
		maxRetries: 2,
		baseDelay:  500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Setup connects, initializes the session and loads the tool list. It is a
// no-op once connected.
func (m *Manager) Setup(ctx context.Context) ([]agentboot.MCPTool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.client != nil {
		return m.tools, nil
	}

	var lastErr error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		lastErr = m.connect(ctx)
		if lastErr == nil {
			return m.tools, nil
		}

		logger.Error("Failed to connect to MCP server",
			zap.String("url", m.url), zap.Int("attempt", attempt+1), zap.Error(lastErr))
		if attempt == m.maxRetries {
			break
		}

		select {
		case <-time.After(m.backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("connect to MCP server at %s: %w", m.url, lastErr)
}

func (m *Manager) connect(ctx context.Context) error {
	c, err := client.NewSSEMCPClient(m.url)
	if err != nil {
		return err
	}

	// The SSE stream outlives the setup call, so it is bound to the manager.
	streamCtx, cancel := context.WithCancel(context.Background())
	if err := c.Start(streamCtx); err != nil {
		cancel()
		return fmt.Errorf("start sse stream: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "ipl-tweet-agent", Version: "1.0.0"}

	if _, err := c.Initialize(ctx, initReq); err != nil {
		cancel()
		c.Close()
		return fmt.Errorf("initialize: %w", err)
	}

	listed, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		cancel()
		c.Close()
		return fmt.Errorf("list tools: %w", err)
	}

	tools := make([]agentboot.MCPTool, 0, len(listed.Tools))
	for _, t := range listed.Tools {
		tools = append(tools, m.toAgentTool(t))
	}

	m.client = c
	m.cancel = cancel
	m.tools = tools
	logger.Info("Connected to MCP server", zap.String("url", m.url), zap.Int("tools", len(tools)))
	return nil
}

func (m *Manager) backoff(attempt int) time.Duration {
	backoff := float64(m.baseDelay) * float64(int(1)<<attempt)
	jitter := (rand.Float64() * 0.2) * backoff
	return time.Duration(backoff + jitter)
}

// Tools returns the tools loaded by Setup.
func (m *Manager) Tools() []agentboot.MCPTool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tools
}

// CallTool invokes a remote tool and joins its text content. Tool error
// results are returned as errors.
func (m *Manager) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	m.mu.Lock()
	c, closed := m.client, m.closed
	m.mu.Unlock()

	if closed {
		return "", ErrClosed
	}
	if c == nil {
		return "", fmt.Errorf("mcp client for %s is not set up", m.url)
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := c.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("call tool %s: %w", name, err)
	}

	text := joinText(result.Content)
	if result.IsError {
		return "", fmt.Errorf("tool %s returned an error: %s", name, text)
	}
	return text, nil
}

// Close releases the session. Safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if m.client == nil {
		return nil
	}

	err := m.client.Close()
	m.cancel()
	m.client = nil
	return err
}

func (m *Manager) toAgentTool(t mcp.Tool) agentboot.MCPTool {
	required := make(map[string]bool, len(t.InputSchema.Required))
	for _, r := range t.InputSchema.Required {
		required[r] = true
	}

	names := make([]string, 0, len(t.InputSchema.Properties))
	for name := range t.InputSchema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	builder := agentboot.NewMCPToolBuilder(t.Name, t.Description)
	for _, name := range names {
		jsonType, desc := describeProperty(t.InputSchema.Properties[name])
		builder.Param(name, jsonType, desc, required[name])
	}

	toolName := t.Name
	return builder.
		WithHandler(func(ctx context.Context, params api.ToolCallFunctionArguments) (string, error) {
			return m.CallTool(ctx, toolName, params)
		}).
		Build()
}

func describeProperty(raw any) (jsonType, description string) {
	jsonType = "string"

	prop, ok := raw.(map[string]any)
	if !ok {
		return jsonType, ""
	}
	if t, ok := prop["type"].(string); ok && t != "" {
		jsonType = t
	}
	description, _ = prop["description"].(string)
	return jsonType, description
}

func joinText(contents []mcp.Content) string {
	parts := make([]string, 0, len(contents))
	for _, c := range contents {
		switch tc := c.(type) {
		case mcp.TextContent:
			parts = append(parts, tc.Text)
		case *mcp.TextContent:
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
