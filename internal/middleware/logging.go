package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLogger writes one access log entry per request.  Server errors
// are logged at error level, client errors at warn.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	if logger == nil {
		return passThrough
	}
	logger = logger.Named("http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			status := c.Response().Status

			level := zapcore.InfoLevel
			switch {
			case status >= 500:
				level = zapcore.ErrorLevel
			case status >= 400:
				level = zapcore.WarnLevel
			}
			if ce := logger.Check(level, "request"); ce != nil {
				ce.Write(
					zap.String("method", req.Method),
					zap.String("path", req.URL.Path),
					zap.Int("status", status),
					zap.Duration("duration", time.Since(start)),
					zap.String("remote_ip", c.RealIP()),
					zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				)
			}
			return nil
		}
	}
}
