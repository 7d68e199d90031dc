package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/booking-reservation/internal/handler"
	"github.com/iliyamo/booking-reservation/internal/repository"
	"github.com/iliyamo/booking-reservation/internal/service"
)

func TestRoutes(t *testing.T) {
	store := repository.NewMemoryStore()
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "sentinel_total", Help: "sentinel"}))

	e := echo.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(false, nil)
	RegisterRoutes(e, handler.NewHealthHandler(store), promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	var groupHits int
	counting := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			groupHits++
			return next(c)
		}
	}
	h := handler.NewReservationHandler(service.NewReservationService(store, nil, nil, nil))
	RegisterBookings(e, handler.NewReservationEndpoints(h), counting)

	tests := []struct {
		method, target, body string
		status               int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/bookings/reserve", `{"name":"Ana","email":"ana@example.com","datetime":"2024-02-29 19:30:00","size":2}`, http.StatusCreated},
		{http.MethodGet, "/bookings", "", http.StatusOK},
		{http.MethodPut, "/bookings/edit", `{"id":1,"name":"Ana","email":"ana@example.com","datetime":"2024-02-29 19:30:00","size":3}`, http.StatusOK},
		{http.MethodDelete, "/bookings/cancel?id=1", "", http.StatusOK},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))
		assert.Equal(t, tt.status, rec.Code, "%s %s: %s", tt.method, tt.target, rec.Body.String())
	}
	assert.Equal(t, 4, groupHits)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "sentinel_total")
}
