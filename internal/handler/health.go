package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /healthz for load balancers and monitoring.
type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler { return &HealthHandler{store: store} }

// Health returns "ok" when the store answers a ping within two seconds
// and 503 otherwise.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		return c.String(http.StatusServiceUnavailable, "unavailable")
	}
	return c.String(http.StatusOK, "ok")
}
