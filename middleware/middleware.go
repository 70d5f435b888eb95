package middleware

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const ProcessTimeHeader = "X-Process-Time"

// ErrorHandler renders every error as {"detail": "..."}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{"detail": message})
}

// ProcessTime sets X-Process-Time to the handler duration in seconds and,
// when log is not nil, writes one access line per request.
func ProcessTime(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				return herr
			}
		}

		elapsed := time.Since(start)
		c.Set(ProcessTimeHeader, strconv.FormatFloat(elapsed.Seconds(), 'f', 6, 64))

		if log != nil {
			log.Info("Request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("process_time", elapsed),
			)
		}
		return nil
	}
}

// BindJSON decodes the request body into out. Malformed JSON is a 400.
func BindJSON(c *fiber.Ctx, out any) error {
	if err := json.Unmarshal(c.Body(), out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body: "+err.Error())
	}
	return nil
}
