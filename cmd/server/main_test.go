package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iliyamo/booking-reservation/internal/config"
	"github.com/iliyamo/booking-reservation/internal/database"
)

func TestMigrateCommand_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reservations.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	db, err := database.OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM reservations`))
	assert.Zero(t, n)
}

func TestOpenStore_Memory(t *testing.T) {
	store, closeFn, err := openStore(context.Background(), config.Config{DBDriver: config.DriverMemory})
	require.NoError(t, err)
	require.NoError(t, store.Ping(context.Background()))
	assert.NoError(t, closeFn())
}

func TestNewServer_EndToEnd(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cfg := config.Config{
		Env:       "test",
		RateLimit: config.RateLimitConfig{Enabled: true, Capacity: 100, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute, Prefix: "rl"},
		Cache:     config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}, TTL: time.Minute, Prefix: "cache"},
	}
	store, _, err := openStore(context.Background(), config.Config{DBDriver: config.DriverMemory})
	require.NoError(t, err)
	e := newServer(cfg, zaptest.NewLogger(t), store, rdb, prometheus.NewRegistry())

	send := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, "MISS", send(http.MethodGet, "/bookings", "").Header().Get("X-Cache"))
	assert.Equal(t, "HIT", send(http.MethodGet, "/bookings", "").Header().Get("X-Cache"))

	rec := send(http.MethodPost, "/bookings/reserve", `{"name":"Ana","email":"ana@example.com","datetime":"2024-02-29 19:30:00","size":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = send(http.MethodGet, "/bookings", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Contains(t, rec.Body.String(), `"name":"Ana"`)

	rec = send(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `booking_layer_calls_total{operation="handler.ReservationHandler.Reserve",outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(), `booking_http_requests_total`)
}
