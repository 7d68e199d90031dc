package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/booking-reservation/internal/config"
	"github.com/iliyamo/booking-reservation/internal/handler"
	"github.com/iliyamo/booking-reservation/internal/interceptor"
	"github.com/iliyamo/booking-reservation/internal/middleware"
	"github.com/iliyamo/booking-reservation/internal/observability"
	"github.com/iliyamo/booking-reservation/internal/queue"
	"github.com/iliyamo/booking-reservation/internal/repository"
	"github.com/iliyamo/booking-reservation/internal/router"
	"github.com/iliyamo/booking-reservation/internal/service"
)

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	rdb := config.NewRedisClient(cfg.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	e := newServer(cfg, logger, store, rdb, reg)

	if cfg.AuditConsumerEnabled {
		consumer := queue.NewAuditConsumer(cfg.RabbitURL, cfg.EventsQueue, cfg.AuditLogPath, logger)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("audit consumer stopped", zap.Error(err))
			}
		}()
	}

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newServer wires every layer explicitly.  rdb may be nil, which disables
// rate limiting and caching.
func newServer(cfg config.Config, logger *zap.Logger, store repository.Store, rdb *redis.Client, reg *prometheus.Registry) *echo.Echo {
	metrics := observability.NewMetrics(reg)
	ic := interceptor.New(logger, metrics)

	var publisher service.EventPublisher
	if cfg.EventsEnabled {
		publisher = queue.NewPublisher(cfg.RabbitURL, cfg.EventsQueue, logger).WithTimeout(cfg.EventsTimeout)
	}
	svc := service.NewReservationService(repository.WithInterceptor(store, ic), publisher, logger, metrics)
	reservations := handler.WithInterceptor(handler.NewReservationHandler(service.WithInterceptor(svc, ic)), ic)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(cfg.Production(), logger)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics(metrics))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	router.RegisterRoutes(e, handler.NewHealthHandler(store), promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	router.RegisterBookings(e, handler.NewReservationEndpoints(reservations),
		middleware.NewTokenBucket(cfg.RateLimit, rdb, logger),
		middleware.NewRedisCache(cfg.Cache, rdb, logger),
	)
	return e
}
