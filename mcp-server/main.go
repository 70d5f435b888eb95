package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/SaiNageswarS/ipl-tweet-agent/toolserver"
)

func main() {
	dotenv.LoadEnv()

	host := flag.String("host", "127.0.0.1", "address the SSE server binds to")
	port := flag.Int("port", 3002, "port the SSE server listens on")
	baseURL := flag.String("base-url", "", "public base URL advertised to clients (defaults to http://host:port)")
	flag.Parse()

	addr := net.JoinHostPort(*host, fmt.Sprint(*port))
	if *baseURL == "" {
		*baseURL = "http://" + addr
	}

	sse := toolserver.NewSSEServer(toolserver.New(), *baseURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Starting tweet tool server",
			zap.String("address", addr),
			zap.String("sse", toolserver.SSEEndpoint),
			zap.String("messages", toolserver.MessageEndpoint))

		if err := sse.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Tool server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sse.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
