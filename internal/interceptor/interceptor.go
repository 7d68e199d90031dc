// Package interceptor wraps every handler, service and repository operation
// with entry and exit diagnostics.  Each wrapped call logs
//
//	Entering <op>()
//
// and then exactly one exit line whose level depends on the outcome:
//
//   - client-input fault: warn "with status code 400"; the fault is suppressed
//     and the zero value is returned
//   - any other fault or a panic: error "with exception: <trace>"; the fault
//     is returned as an opaque *apperror.ServerError
//   - absent result (nil, a not-found sentinel, a 4xx envelope): warn with the
//     reason reported by Classify
//   - anything else: info "with OK"
//
// Suppression contract: only the boundary layer ever receives client-input
// faults, because entities are validated before they reach the service.  A
// zero value coming back from a wrapped boundary call therefore means "the
// request payload was rejected" and the caller renders it as a 400.
package interceptor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/booking-reservation/internal/apperror"
	"github.com/iliyamo/booking-reservation/internal/observability"
)

// Interceptor carries the logger and metrics used by Call and Run.  A nil
// *Interceptor is valid and simply invokes the wrapped function.
type Interceptor struct {
	logger  *zap.Logger
	metrics *observability.Metrics
}

// New returns an Interceptor.  metrics may be nil.
func New(logger *zap.Logger, metrics *observability.Metrics) *Interceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interceptor{logger: logger, metrics: metrics}
}

// Call wraps an operation that returns a value.
func Call[T any](ic *Interceptor, ctx context.Context, op string, fn func(context.Context) (T, error)) (result T, err error) {
	if ic == nil {
		return fn(ctx)
	}
	log := ic.logger.With(zap.String("op", op))
	if id := observability.RequestIDFromContext(ctx); id != "" {
		log = log.With(zap.String("request_id", id))
	}
	log.Info("Entering " + op + "()")
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = &apperror.ServerError{Op: op, Cause: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
			ic.fatal(log, op, start, err.(*apperror.ServerError))
		}
	}()

	result, err = fn(ctx)
	if err != nil {
		var zero T
		if apperror.IsClientInput(err) {
			log.Warn("Exiting "+op+"() with status code 400", zap.Error(err), zap.Duration("duration", time.Since(start)))
			ic.observe(op, OutcomeClientError, start)
			return zero, nil
		}
		var srvErr *apperror.ServerError
		if !errors.As(err, &srvErr) {
			srvErr = &apperror.ServerError{Op: op, Cause: err, Stack: debug.Stack()}
		}
		ic.fatal(log, op, start, srvErr)
		return zero, srvErr
	}

	outcome := Classify(result)
	if outcome.Kind == OutcomeWarning {
		log.Warn("Exiting "+op+"() with "+outcome.Reason, zap.Duration("duration", time.Since(start)))
	} else {
		log.Info("Exiting "+op+"() with OK", zap.Duration("duration", time.Since(start)))
	}
	ic.observe(op, outcome.Kind, start)
	return result, nil
}

// Run wraps an operation without a result value.  A successful return is a
// happy exit.
func Run(ic *Interceptor, ctx context.Context, op string, fn func(context.Context) error) error {
	_, err := Call(ic, ctx, op, func(ctx context.Context) (done, error) {
		return done{}, fn(ctx)
	})
	return err
}

// done is the non-nil placeholder result used by Run.
type done struct{}

func (ic *Interceptor) fatal(log *zap.Logger, op string, start time.Time, err *apperror.ServerError) {
	log.Error("Exiting "+op+"() with exception: "+err.Trace(), zap.Duration("duration", time.Since(start)))
	ic.observe(op, OutcomeFatal, start)
}

func (ic *Interceptor) observe(op string, kind OutcomeKind, start time.Time) {
	if ic.metrics == nil {
		return
	}
	ic.metrics.LayerCalls.WithLabelValues(op, string(kind)).Inc()
	ic.metrics.LayerDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
