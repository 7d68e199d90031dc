package repository

import (
	"context"

	"github.com/iliyamo/booking-reservation/internal/interceptor"
	"github.com/iliyamo/booking-reservation/internal/model"
)

const gatewayName = "repository.ReservationRepo."

// WithInterceptor wraps every gateway operation of units opened by s.
func WithInterceptor(s Store, ic *interceptor.Interceptor) Store {
	return &interceptedStore{Store: s, ic: ic}
}

type interceptedStore struct {
	Store
	ic *interceptor.Interceptor
}

func (s *interceptedStore) Begin(ctx context.Context) (UnitOfWork, error) {
	uow, err := s.Store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &interceptedUnit{UnitOfWork: uow, gw: &interceptedGateway{next: uow.Reservations(), ic: s.ic}}, nil
}

type interceptedUnit struct {
	UnitOfWork
	gw ReservationGateway
}

func (u *interceptedUnit) Reservations() ReservationGateway { return u.gw }

type interceptedGateway struct {
	next ReservationGateway
	ic   *interceptor.Interceptor
}

func (g *interceptedGateway) Create(ctx context.Context, r *model.Reservation) error {
	return interceptor.Run(g.ic, ctx, gatewayName+"Create", func(ctx context.Context) error {
		return g.next.Create(ctx, r)
	})
}

func (g *interceptedGateway) ReadAll(ctx context.Context) ([]*model.Reservation, error) {
	return interceptor.Call(g.ic, ctx, gatewayName+"ReadAll", g.next.ReadAll)
}

func (g *interceptedGateway) Update(ctx context.Context, r *model.Reservation) (*model.Reservation, error) {
	return interceptor.Call(g.ic, ctx, gatewayName+"Update", func(ctx context.Context) (*model.Reservation, error) {
		return g.next.Update(ctx, r)
	})
}

func (g *interceptedGateway) Delete(ctx context.Context, r *model.Reservation) (DeleteResult, error) {
	return interceptor.Call(g.ic, ctx, gatewayName+"Delete", func(ctx context.Context) (DeleteResult, error) {
		return g.next.Delete(ctx, r)
	})
}
