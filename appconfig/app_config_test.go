package appconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://tweet-mcp:3002/sse", cfg.MCPSSEURL())
	assert.Equal(t, "0.0.0.0:8000", cfg.APIAddress())
	assert.Equal(t, "0.0.0.0:9090", cfg.MetricsAddress())
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout())
}

func TestFillDefaults(t *testing.T) {
	cfg := &AppConfig{
		MCPHost:               "127.0.0.1",
		RequestTimeoutSeconds: -5,
	}
	cfg.fillDefaults()

	assert.Equal(t, "http://127.0.0.1:3002/sse", cfg.MCPSSEURL())
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, 5, cfg.AgentMaxTurns)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout())
}

func TestMCPSSEURLWithIPv6Host(t *testing.T) {
	cfg := &AppConfig{MCPHost: "::1", TweetMCPPort: "3002"}
	assert.Equal(t, "http://[::1]:3002/sse", cfg.MCPSSEURL())
}
