package appconfig

import (
	"fmt"
	"net"
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	APIHost     string `env:"API_HOST" ini:"api_host"`
	APIPort     string `env:"API_PORT" ini:"api_port"`
	MetricsHost string `env:"METRICS_HOST" ini:"metrics_host"`
	MetricsPort string `env:"METRICS_PORT" ini:"metrics_port"`
	MetricsURL  string `env:"METRICS_URL" ini:"metrics_url"`

	MCPHost      string `env:"MCP_HOST" ini:"mcp_host"`
	TweetMCPPort string `env:"TWEET_MCP_PORT" ini:"tweet_mcp_port"`

	LLMProvider string `env:"LLM_PROVIDER" ini:"llm_provider"`
	LLMModel    string `env:"LLM_MODEL" ini:"llm_model"`

	AgentMaxTurns         int `ini:"agent_max_turns"`
	RequestTimeoutSeconds int `ini:"request_timeout_seconds"`
}

// Default returns the configuration used when config.ini leaves a key unset.
func Default() *AppConfig {
	return &AppConfig{
		APIHost:               "0.0.0.0",
		APIPort:               "8000",
		MetricsHost:           "0.0.0.0",
		MetricsPort:           "9090",
		MetricsURL:            "http://localhost:9090",
		MCPHost:               "tweet-mcp",
		TweetMCPPort:          "3002",
		LLMProvider:           "openai",
		AgentMaxTurns:         5,
		RequestTimeoutSeconds: 120,
	}
}

// Load reads path on top of Default. Environment variables override the file.
func Load(path string) (*AppConfig, error) {
	cfg := Default()
	if err := config.LoadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *AppConfig) fillDefaults() {
	d := Default()
	setIfEmpty(&c.APIHost, d.APIHost)
	setIfEmpty(&c.APIPort, d.APIPort)
	setIfEmpty(&c.MetricsHost, d.MetricsHost)
	setIfEmpty(&c.MetricsPort, d.MetricsPort)
	setIfEmpty(&c.MetricsURL, d.MetricsURL)
	setIfEmpty(&c.MCPHost, d.MCPHost)
	setIfEmpty(&c.TweetMCPPort, d.TweetMCPPort)
	setIfEmpty(&c.LLMProvider, d.LLMProvider)

	if c.AgentMaxTurns <= 0 {
		c.AgentMaxTurns = d.AgentMaxTurns
	}
	if c.RequestTimeoutSeconds < 0 {
		c.RequestTimeoutSeconds = 0
	}
}

func setIfEmpty(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// MCPSSEURL is the SSE endpoint of the tweet tool server.
func (c *AppConfig) MCPSSEURL() string {
	return fmt.Sprintf("http://%s/sse", net.JoinHostPort(c.MCPHost, c.TweetMCPPort))
}

func (c *AppConfig) APIAddress() string {
	return net.JoinHostPort(c.APIHost, c.APIPort)
}

func (c *AppConfig) MetricsAddress() string {
	return net.JoinHostPort(c.MetricsHost, c.MetricsPort)
}

// RequestTimeout bounds one tweet request. Zero disables the bound.
func (c *AppConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
