// Package service implements the reservation business operations.  Every
// operation runs in its own unit of work which is committed once the
// gateway call returns, whether or not the record was found.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/booking-reservation/internal/model"
	"github.com/iliyamo/booking-reservation/internal/observability"
	"github.com/iliyamo/booking-reservation/internal/queue"
	"github.com/iliyamo/booking-reservation/internal/repository"
)

// ReservationService is the orchestrator contract consumed by the handler.
type ReservationService interface {
	Reserve(ctx context.Context, r *model.Reservation) (model.View, error)
	RetrieveAll(ctx context.Context) ([]model.View, error)
	// Edit returns nil when no reservation carries r's id.
	Edit(ctx context.Context, r *model.Reservation) (*model.View, error)
	Cancel(ctx context.Context, r *model.Reservation) (CancelResult, error)
}

// CancelResult is the outcome of Cancel.
type CancelResult int

const (
	CancelOK CancelResult = iota + 1
	CancelNotFound
)

func (c CancelResult) String() string {
	switch c {
	case CancelOK:
		return "CancelResult.OK"
	case CancelNotFound:
		return "CancelResult.NOT_FOUND"
	}
	return "CancelResult.UNKNOWN"
}

// AbsenceReason reports CancelNotFound as an absent result.
func (c CancelResult) AbsenceReason() (string, bool) {
	if c == CancelNotFound {
		return c.String(), true
	}
	return "", false
}

// EventPublisher delivers lifecycle events after commit.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.ReservationEvent) error
}

// ReservationBusinessService is the ReservationService backed by a
// repository.Store.
type ReservationBusinessService struct {
	store     repository.Store
	publisher EventPublisher
	logger    *zap.Logger
	metrics   *observability.Metrics
	now       func() time.Time
}

// NewReservationService returns a service over store.  publisher, logger
// and metrics may be nil; a nil publisher disables lifecycle events.
func NewReservationService(store repository.Store, publisher EventPublisher, logger *zap.Logger, metrics *observability.Metrics) *ReservationBusinessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationBusinessService{
		store:     store,
		publisher: publisher,
		logger:    logger.Named("service"),
		metrics:   metrics,
		now:       time.Now,
	}
}

func (s *ReservationBusinessService) Reserve(ctx context.Context, r *model.Reservation) (model.View, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return model.View{}, err
	}
	defer uow.Rollback()

	if err := uow.Reservations().Create(ctx, r); err != nil {
		return model.View{}, err
	}
	if err := uow.Commit(); err != nil {
		return model.View{}, err
	}
	v := r.Serialize()
	s.publish(ctx, queue.EventReserved, v)
	return v, nil
}

func (s *ReservationBusinessService) RetrieveAll(ctx context.Context) ([]model.View, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	all, err := uow.Reservations().ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	views := make([]model.View, 0, len(all))
	for _, r := range all {
		views = append(views, r.Serialize())
	}
	return views, nil
}

func (s *ReservationBusinessService) Edit(ctx context.Context, r *model.Reservation) (*model.View, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	updated, err := uow.Reservations().Update(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}
	v := updated.Serialize()
	s.publish(ctx, queue.EventEdited, v)
	return &v, nil
}

func (s *ReservationBusinessService) Cancel(ctx context.Context, r *model.Reservation) (CancelResult, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer uow.Rollback()

	res, err := uow.Reservations().Delete(ctx, r)
	if err != nil {
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}
	if res == repository.DeleteMissing {
		return CancelNotFound, nil
	}
	s.publish(ctx, queue.EventCancelled, r.Serialize())
	return CancelOK, nil
}

// publish never fails the caller; the change is already committed.
func (s *ReservationBusinessService) publish(ctx context.Context, t queue.EventType, v model.View) {
	if s.publisher == nil {
		return
	}
	result := "ok"
	if err := s.publisher.Publish(ctx, queue.NewReservationEvent(t, v, s.now())); err != nil {
		result = "error"
		s.logger.Warn("publish reservation event failed", zap.String("type", string(t)), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.EventsPublished.WithLabelValues(string(t), result).Inc()
	}
}
