package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/booking-reservation/internal/apperror"
	"github.com/iliyamo/booking-reservation/internal/model"
	"github.com/iliyamo/booking-reservation/internal/service"
)

// Reservations turns raw request input into response envelopes.  It knows
// nothing about HTTP framing, so it can be wrapped by the interceptor and
// exercised without a server.
type Reservations interface {
	Reserve(ctx context.Context, body []byte) (Envelope, error)
	List(ctx context.Context) (Envelope, error)
	Edit(ctx context.Context, body []byte) (Envelope, error)
	Cancel(ctx context.Context, rawID string) (Envelope, error)
}

// reservationRequest mirrors the JSON payload.  Pointers distinguish a
// missing key from a zero value.
type reservationRequest struct {
	Name     *string      `json:"name" validate:"required"`
	Email    *string      `json:"email" validate:"required"`
	DateTime *string      `json:"datetime" validate:"required"`
	Size     *wholeNumber `json:"size" validate:"required"`
}

// wholeNumber is a JSON number without a fractional part; 2 and 2.0 both
// decode to 2.  Strings and fractions are rejected.
type wholeNumber int

func (n *wholeNumber) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("size %s is not a whole number", b)
	}
	*n = wholeNumber(f)
	return nil
}

type editRequest struct {
	ID *int64 `json:"id" validate:"required"`
	reservationRequest
}

// ReservationHandler implements Reservations on top of a ReservationService.
type ReservationHandler struct {
	svc      service.ReservationService
	validate *validator.Validate
}

// NewReservationHandler returns a handler backed by svc.
func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{svc: svc, validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (h *ReservationHandler) Reserve(ctx context.Context, body []byte) (Envelope, error) {
	var req reservationRequest
	raw, err := h.decode(body, &req)
	if err != nil {
		return invalid(raw), nil
	}
	r, err := model.NewReservation(nil, *req.Name, *req.Email, *req.DateTime, int(*req.Size))
	if err != nil {
		return rejected(raw, err)
	}
	v, err := h.svc.Reserve(ctx, r)
	if err != nil {
		return Envelope{}, err
	}
	return newEnvelope(http.StatusCreated, v, MsgCreated), nil
}

func (h *ReservationHandler) List(ctx context.Context) (Envelope, error) {
	views, err := h.svc.RetrieveAll(ctx)
	if err != nil {
		return Envelope{}, err
	}
	if views == nil {
		views = []model.View{}
	}
	return newEnvelope(http.StatusOK, views, MsgOK), nil
}

func (h *ReservationHandler) Edit(ctx context.Context, body []byte) (Envelope, error) {
	var req editRequest
	raw, err := h.decode(body, &req)
	if err != nil {
		return invalid(raw), nil
	}
	r, err := model.NewReservation(req.ID, *req.Name, *req.Email, *req.DateTime, int(*req.Size))
	if err != nil {
		return rejected(raw, err)
	}
	v, err := h.svc.Edit(ctx, r)
	if err != nil {
		return Envelope{}, err
	}
	if v == nil {
		return newEnvelope(http.StatusNotFound, nil, MsgNotFound), nil
	}
	return newEnvelope(http.StatusOK, *v, MsgOK), nil
}

// Cancel deletes the reservation named by rawID.  A missing id is a
// client-input fault; an id that is not a number cannot match any record.
func (h *ReservationHandler) Cancel(ctx context.Context, rawID string) (Envelope, error) {
	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		return Envelope{}, &apperror.MissingFieldError{Fields: []string{"id"}}
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return newEnvelope(http.StatusNotFound, nil, MsgNotFound), nil
	}
	res, err := h.svc.Cancel(ctx, model.ReservationRef(id))
	if err != nil {
		return Envelope{}, err
	}
	if res == service.CancelNotFound {
		return newEnvelope(http.StatusNotFound, nil, MsgNotFound), nil
	}
	return newEnvelope(http.StatusOK, nil, MsgOK), nil
}

// decode fills dst from body and checks every required key is present.
// raw is the payload as a generic value for echoing back on rejection.
func (h *ReservationHandler) decode(body []byte, dst any) (raw any, err error) {
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &apperror.MissingFieldError{Err: err}
	}
	if _, ok := raw.(map[string]any); !ok {
		return raw, &apperror.MissingFieldError{Err: errors.New("payload is not an object")}
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(dst); err != nil {
		return raw, &apperror.MissingFieldError{Err: err}
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return raw, &apperror.MissingFieldError{Fields: fields, Err: err}
		}
		return raw, err
	}
	return raw, nil
}

// rejected renders an entity construction failure.
func rejected(raw any, err error) (Envelope, error) {
	var vErr *apperror.ValidationError
	if errors.As(err, &vErr) {
		return newEnvelope(http.StatusBadRequest, raw, vErr.Message), nil
	}
	return Envelope{}, err
}
