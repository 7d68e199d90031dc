package service

import (
	"context"

	"github.com/iliyamo/booking-reservation/internal/interceptor"
	"github.com/iliyamo/booking-reservation/internal/model"
)

const serviceName = "service.ReservationBusinessService."

// WithInterceptor wraps every operation of next.
func WithInterceptor(next ReservationService, ic *interceptor.Interceptor) ReservationService {
	return &interceptedService{next: next, ic: ic}
}

type interceptedService struct {
	next ReservationService
	ic   *interceptor.Interceptor
}

func (s *interceptedService) Reserve(ctx context.Context, r *model.Reservation) (model.View, error) {
	return interceptor.Call(s.ic, ctx, serviceName+"Reserve", func(ctx context.Context) (model.View, error) {
		return s.next.Reserve(ctx, r)
	})
}

func (s *interceptedService) RetrieveAll(ctx context.Context) ([]model.View, error) {
	return interceptor.Call(s.ic, ctx, serviceName+"RetrieveAll", s.next.RetrieveAll)
}

func (s *interceptedService) Edit(ctx context.Context, r *model.Reservation) (*model.View, error) {
	return interceptor.Call(s.ic, ctx, serviceName+"Edit", func(ctx context.Context) (*model.View, error) {
		return s.next.Edit(ctx, r)
	})
}

func (s *interceptedService) Cancel(ctx context.Context, r *model.Reservation) (CancelResult, error) {
	return interceptor.Call(s.ic, ctx, serviceName+"Cancel", func(ctx context.Context) (CancelResult, error) {
		return s.next.Cancel(ctx, r)
	})
}
