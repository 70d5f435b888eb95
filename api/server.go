package api

import (
	"context"
	"sync"
	"time"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/SaiNageswarS/ipl-tweet-agent/middleware"
	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
	"github.com/SaiNageswarS/ipl-tweet-agent/tweets"
)

const (
	ServiceName = "IPL Tweet Generator API"
	Version     = "1.0.0"
)

// TweetGenerator is the per-request generation pipeline.
type TweetGenerator interface {
	Generate(ctx context.Context, moment string, tweetType schema.TweetType, both bool) []tweets.Result
	Close() error
}

// GeneratorFactory builds a fresh generator for each request.
type GeneratorFactory func(requestID string) TweetGenerator

// MetricsReporter receives per-tweet metrics and forwarded log events.
type MetricsReporter interface {
	RecordTweetGeneration(ctx context.Context, requestID string, tweetType schema.TweetType, generationTime time.Duration, tweet string) bool
	LogEvent(ctx context.Context, level schema.LogLevel, message, requestID string, data map[string]any) bool
}

type Server struct {
	newGenerator GeneratorFactory
	metrics      MetricsReporter
	timeout      time.Duration
	accessLog    bool

	pending sync.WaitGroup
}

type Option func(*Server)

// WithRequestTimeout bounds each tweet request. Zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithAccessLog enables fiber's request logger.
func WithAccessLog(enabled bool) Option {
	return func(s *Server) { s.accessLog = enabled }
}

func NewServer(newGenerator GeneratorFactory, metrics MetricsReporter, opts ...Option) *Server {
	s := &Server{newGenerator: newGenerator, metrics: metrics}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// App builds the fiber application with all routes mounted.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      ServiceName,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	if s.accessLog {
		app.Use(logger.New())
	}
	app.Use(middleware.ProcessTime(nil))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": ServiceName,
			"version": Version,
			"status":  "running",
			"docs":    "/docs",
		})
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.JSON(openAPIDocument())
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	v1 := app.Group("/v1")
	v1.Post("/tweets", s.handleGenerateTweets)
	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "version": Version})
	})

	return app
}

// Wait blocks until background work started by handlers has finished.
func (s *Server) Wait() {
	s.pending.Wait()
}

func (s *Server) background(task func() bool) {
	s.pending.Add(1)
	async.Go(func() (bool, error) {
		defer s.pending.Done()
		return task(), nil
	})
}
