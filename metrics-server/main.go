package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"

	"github.com/SaiNageswarS/ipl-tweet-agent/appconfig"
	"github.com/SaiNageswarS/ipl-tweet-agent/metrics"
)

func main() {
	dotenv.LoadEnv()

	cfg, err := appconfig.Load("config.ini")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	log, err := zap.NewProduction()
	if err != nil {
		logger.Fatal("Failed to build logger", zap.Error(err))
	}
	defer log.Sync()

	app := metrics.NewService(log.Named("metrics")).App()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Starting metrics service", zap.String("address", cfg.MetricsAddress()))
		if err := app.Listen(cfg.MetricsAddress()); err != nil {
			log.Error("Metrics service stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
