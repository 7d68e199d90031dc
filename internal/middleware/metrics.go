package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-reservation/internal/observability"
)

// Metrics records request counts and latency by route template.
func Metrics(m *observability.Metrics) echo.MiddlewareFunc {
	if m == nil {
		return passThrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the response so the status is final
				c.Error(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
