package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"

	"github.com/SaiNageswarS/ipl-tweet-agent/agentboot"
	"github.com/SaiNageswarS/ipl-tweet-agent/api"
	"github.com/SaiNageswarS/ipl-tweet-agent/appconfig"
	"github.com/SaiNageswarS/ipl-tweet-agent/llm"
	"github.com/SaiNageswarS/ipl-tweet-agent/mcpclient"
	"github.com/SaiNageswarS/ipl-tweet-agent/metrics"
	"github.com/SaiNageswarS/ipl-tweet-agent/tweets"
)

const shutdownTimeout = 10 * time.Second

func main() {
	dotenv.LoadEnv()

	cfg, err := appconfig.Load("config.ini")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	metricsClient := metrics.NewClient(cfg.MetricsURL, "agent")

	newModel := func(ctx context.Context) (llm.LLMClient, error) {
		return llm.NewClient(ctx, cfg.LLMProvider, cfg.LLMModel)
	}

	newGenerator := func(requestID string) api.TweetGenerator {
		return tweets.NewGenerator(
			mcpclient.NewManager(cfg.MCPSSEURL()),
			newModel,
			tweets.WithMaxTurns(cfg.AgentMaxTurns),
			tweets.WithReporter(&agentboot.LogProgressReporter{RequestID: requestID}),
		)
	}

	srv := api.NewServer(newGenerator, metricsClient,
		api.WithRequestTimeout(cfg.RequestTimeout()),
		api.WithAccessLog(true),
	)
	app := srv.App()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Starting tweet agent API",
			zap.String("address", cfg.APIAddress()),
			zap.String("mcp_url", cfg.MCPSSEURL()),
			zap.String("llm_provider", cfg.LLMProvider))

		if err := app.Listen(cfg.APIAddress()); err != nil {
			logger.Error("API server stopped", zap.Error(err))
			stop()
		}
	}()

	metricsClient.UpdateHealthStatus(ctx, true)

	<-ctx.Done()
	logger.Info("Shutting down tweet agent API")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	srv.Wait()

	healthCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	metricsClient.UpdateHealthStatus(healthCtx, false)
}
