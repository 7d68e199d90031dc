package handler

import (
	"context"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/booking-reservation/internal/observability"
)

// ReservationEndpoints adapts Reservations to echo routes.
type ReservationEndpoints struct {
	h Reservations
}

func NewReservationEndpoints(h Reservations) *ReservationEndpoints {
	return &ReservationEndpoints{h: h}
}

// Reserve handles POST /bookings/reserve.
func (e *ReservationEndpoints) Reserve(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return render(c, invalid(nil))
	}
	env, err := e.h.Reserve(requestContext(c), body)
	if err != nil {
		return err
	}
	return render(c, env)
}

// List handles GET /bookings.
func (e *ReservationEndpoints) List(c echo.Context) error {
	env, err := e.h.List(requestContext(c))
	if err != nil {
		return err
	}
	return render(c, env)
}

// Edit handles PUT /bookings/edit.
func (e *ReservationEndpoints) Edit(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return render(c, invalid(nil))
	}
	env, err := e.h.Edit(requestContext(c), body)
	if err != nil {
		return err
	}
	return render(c, env)
}

// Cancel handles DELETE /bookings/cancel?id=.
func (e *ReservationEndpoints) Cancel(c echo.Context) error {
	env, err := e.h.Cancel(requestContext(c), c.QueryParam("id"))
	if err != nil {
		return err
	}
	return render(c, env)
}

func render(c echo.Context, env Envelope) error {
	status, env := env.Status()
	return c.JSON(status, env)
}

// requestContext carries the id assigned by the RequestID middleware so
// wrapped layers can log it.
func requestContext(c echo.Context) context.Context {
	ctx := c.Request().Context()
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		ctx = observability.ContextWithRequestID(ctx, id)
	}
	return ctx
}
