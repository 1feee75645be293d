package middleware

import (
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
)

var Logger *slog.Logger

func init() {
	// Initialize a structured logger that writes to stdout in JSON format
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// StructuredLogger returns an Echo middleware for logging requests using slog
func StructuredLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Process request
			err := next(c)

			// Log details after request is handled
			status := c.Response().Status
			latency := time.Since(start)

			fields := []any{
				slog.Int("status", status),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.String("ip", c.RealIP()),
				slog.Duration("latency", latency),
				slog.String("user_agent", c.Request().UserAgent()),
			}

			if err != nil {
				fields = append(fields, slog.String("error", err.Error()))
				Logger.Error("request failed", fields...)
			} else {
				Logger.Info("request processed", fields...)
			}

			return err
		}
	}
}
