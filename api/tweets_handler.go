package api

import (
	"context"
	"strings"
	"time"

	applogger "github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SaiNageswarS/ipl-tweet-agent/middleware"
	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
)

const noTweetsMessage = "Failed to generate any tweets"

func (s *Server) handleGenerateTweets(c *fiber.Ctx) error {
	var req schema.TweetRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		return err
	}

	tweetType, err := req.Validate()
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	requestID := uuid.NewString()
	s.background(func() bool {
		applogger.Info("Tweet request",
			zap.String("request_id", requestID),
			zap.String("tweet_type", tweetType.String()),
			zap.Bool("generate_both_types", req.GenerateBothTypes),
			zap.String("cricket_moment", req.CricketMoment))
		return true
	})

	ctx := c.UserContext()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	generator := s.newGenerator(requestID)
	defer generator.Close()

	results := generator.Generate(ctx, req.CricketMoment, tweetType, req.GenerateBothTypes)

	response := schema.TweetResponse{
		Tweets:    []schema.TweetContent{},
		RequestID: requestID,
		Status:    schema.StatusSuccess,
	}

	var failures []string
	for _, result := range results {
		tweet := result.Tweet()
		if result.Error || tweet == "" {
			failures = append(failures, tweet)
			s.reportFailure(requestID, result.TweetType, tweet)
			continue
		}

		response.Tweets = append(response.Tweets, schema.TweetContent{Content: tweet, TweetType: result.TweetType})
		s.reportTweet(requestID, result.TweetType, result.Elapsed, tweet)
	}

	if len(response.Tweets) == 0 {
		applogger.Error("No tweets generated", zap.String("request_id", requestID), zap.Strings("errors", failures))
		message := noTweetsMessage
		if detail := strings.Join(nonEmpty(failures), "; "); detail != "" {
			message += ": " + detail
		}
		return fiber.NewError(fiber.StatusInternalServerError, message)
	}

	if len(response.Tweets) < len(results) {
		response.Status = schema.StatusPartial
	}

	return c.JSON(response)
}

func (s *Server) reportTweet(requestID string, tweetType schema.TweetType, elapsed time.Duration, tweet string) {
	if s.metrics == nil {
		return
	}

	s.background(func() bool {
		return s.metrics.RecordTweetGeneration(context.Background(), requestID, tweetType, elapsed, tweet)
	})
}

func (s *Server) reportFailure(requestID string, tweetType schema.TweetType, message string) {
	if s.metrics == nil {
		return
	}

	s.background(func() bool {
		return s.metrics.LogEvent(context.Background(), schema.LogLevelError, "Tweet generation failed", requestID,
			map[string]any{"tweet_type": tweetType.String(), "error": message})
	})
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
