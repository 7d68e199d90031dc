// Package router defines how HTTP routes are registered for the API.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-reservation/internal/handler"
)

// RegisterRoutes registers operational endpoints that sit outside rate
// limiting and caching: the health check and the Prometheus scrape target.
func RegisterRoutes(e *echo.Echo, health *handler.HealthHandler, metrics http.Handler) {
	e.GET("/healthz", health.Health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
}

// RegisterBookings mounts the reservation endpoints under /bookings.  mw
// applies to this group only, typically the rate limiter followed by the
// response cache.
func RegisterBookings(e *echo.Echo, r *handler.ReservationEndpoints, mw ...echo.MiddlewareFunc) {
	g := e.Group("/bookings", mw...)
	g.POST("/reserve", r.Reserve)
	g.GET("", r.List)
	g.PUT("/edit", r.Edit)
	g.DELETE("/cancel", r.Cancel)
}
