package handler

import (
	"context"

	"github.com/iliyamo/booking-reservation/internal/interceptor"
)

const handlerName = "handler.ReservationHandler."

// WithInterceptor wraps every operation of next.
func WithInterceptor(next Reservations, ic *interceptor.Interceptor) Reservations {
	return &interceptedHandler{next: next, ic: ic}
}

type interceptedHandler struct {
	next Reservations
	ic   *interceptor.Interceptor
}

func (h *interceptedHandler) Reserve(ctx context.Context, body []byte) (Envelope, error) {
	return interceptor.Call(h.ic, ctx, handlerName+"Reserve", func(ctx context.Context) (Envelope, error) {
		return h.next.Reserve(ctx, body)
	})
}

func (h *interceptedHandler) List(ctx context.Context) (Envelope, error) {
	return interceptor.Call(h.ic, ctx, handlerName+"List", h.next.List)
}

func (h *interceptedHandler) Edit(ctx context.Context, body []byte) (Envelope, error) {
	return interceptor.Call(h.ic, ctx, handlerName+"Edit", func(ctx context.Context) (Envelope, error) {
		return h.next.Edit(ctx, body)
	})
}

func (h *interceptedHandler) Cancel(ctx context.Context, rawID string) (Envelope, error) {
	return interceptor.Call(h.ic, ctx, handlerName+"Cancel", func(ctx context.Context) (Envelope, error) {
		return h.next.Cancel(ctx, rawID)
	})
}
