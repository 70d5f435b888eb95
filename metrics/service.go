package metrics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SaiNageswarS/ipl-tweet-agent/middleware"
	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
)

const isoTimestamp = "2006-01-02T15:04:05.000000"

// Service collects tweet generation metrics on its own registry and
// writes forwarded log events to log.
type Service struct {
	registry *prometheus.Registry
	log      *zap.Logger

	requests       *prometheus.CounterVec
	generationTime *prometheus.HistogramVec
	characters     *prometheus.HistogramVec
	apiHealth      prometheus.Gauge
}

func NewService(log *zap.Logger) *Service {
	s := &Service{
		registry: prometheus.NewRegistry(),
		log:      log,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tweet_requests_total",
			Help: "Total number of tweet generation requests",
		}, []string{"tweet_type"}),
		generationTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tweet_generation_time_seconds",
			Help:    "Time to generate tweets",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"tweet_type"}),
		characters: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tweet_characters",
			Help:    "Number of characters in generated tweets",
			Buckets: []float64{10, 30, 50, 100, 140, 200, 280},
		}, []string{"tweet_type"}),
		apiHealth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "api_health",
			Help: "Health status of the API (1=healthy, 0=unhealthy)",
		}),
	}

	s.registry.MustRegister(s.requests, s.generationTime, s.characters, s.apiHealth)
	s.apiHealth.Set(1)
	return s
}

func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// App builds the fiber application serving the metrics routes.
func (s *Service) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "IPL Tweet Generator Metrics",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.ProcessTime(s.log))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	app.Post("/record", s.handleRecord)
	app.Post("/logs", s.handleLogs)
	app.Post("/health/update", s.handleHealthUpdate)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	return app
}

// Record observes one generated tweet.
func (s *Service) Record(p schema.MetricsPayload) {
	s.requests.WithLabelValues(p.TweetType).Inc()
	s.generationTime.WithLabelValues(p.TweetType).Observe(p.GenerationTimeSeconds)
	s.characters.WithLabelValues(p.TweetType).Observe(float64(p.Characters))
}

func (s *Service) handleRecord(c *fiber.Ctx) error {
	var payload schema.MetricsPayload
	if err := middleware.BindJSON(c, &payload); err != nil {
		return err
	}
	if payload.TweetType == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "tweet_type is required")
	}

	s.Record(payload)
	s.log.Info("Recorded metrics",
		zap.String("request_id", payload.RequestID),
		zap.String("tweet_type", payload.TweetType),
		zap.Float64("generation_time_seconds", payload.GenerationTimeSeconds),
		zap.Int("characters", payload.Characters),
	)

	return c.JSON(schema.RecordedAck{Status: "success", RecordedAt: time.Now().Format(isoTimestamp)})
}

func (s *Service) handleLogs(c *fiber.Ctx) error {
	var event schema.LogEvent
	if err := middleware.BindJSON(c, &event); err != nil {
		return err
	}
	if event.Level == "" || event.Message == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "level and message are required")
	}

	fields := []zap.Field{zap.String("service", event.Service)}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.AdditionalData) > 0 {
		fields = append(fields, zap.Any("additional_data", event.AdditionalData))
	}

	level, critical := zapLevel(event.Level)
	if critical {
		fields = append(fields, zap.String("severity", string(schema.LogLevelCritical)))
	}

	if ce := s.log.Check(level, formatLogMessage(event)); ce != nil {
		ce.Write(fields...)
	}

	return c.JSON(schema.RecordedAck{Status: "success", RecordedAt: time.Now().Format(isoTimestamp)})
}

func (s *Service) handleHealthUpdate(c *fiber.Ctx) error {
	var healthy bool
	if status := c.Query("status"); status != "" {
		parsed, err := strconv.ParseBool(status)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid status query parameter: "+status)
		}
		healthy = parsed
	} else if err := middleware.BindJSON(c, &healthy); err != nil {
		return err
	}

	if healthy {
		s.apiHealth.Set(1)
	} else {
		s.apiHealth.Set(0)
	}

	s.log.Info("API health status updated", zap.Bool("healthy", healthy))
	return c.JSON(fiber.Map{"status": "updated", "health": healthy})
}

// zapLevel maps a forwarded level onto zap. Unknown levels log at info and
// critical is written at error level.
func zapLevel(level schema.LogLevel) (zapcore.Level, bool) {
	switch schema.LogLevel(strings.ToLower(string(level))) {
	case schema.LogLevelDebug:
		return zapcore.DebugLevel, false
	case schema.LogLevelWarning:
		return zapcore.WarnLevel, false
	case schema.LogLevelError:
		return zapcore.ErrorLevel, false
	case schema.LogLevelCritical:
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

func formatLogMessage(event schema.LogEvent) string {
	if event.RequestID != "" {
		return fmt.Sprintf("[%s] [Request: %s] %s", event.Service, event.RequestID, event.Message)
	}
	return fmt.Sprintf("[%s] %s", event.Service, event.Message)
}
