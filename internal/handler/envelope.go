package handler

import (
	"net/http"
	"strconv"
	"strings"
)

// Response messages.
const (
	MsgCreated            = "Created"
	MsgOK                 = "OK"
	MsgInvalidReservation = "Invalid reservation"
	MsgNotFound           = "Reservation not found"
	msgInternalError      = "Internal error: "
)

// Envelope is the body of every reservation response.  Code is the HTTP
// status as a string and always matches the status line.
type Envelope struct {
	Data    any    `json:"data"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newEnvelope(status int, data any, message string) Envelope {
	return Envelope{Data: data, Code: strconv.Itoa(status), Message: message}
}

// invalid is the generic rejection of an unreadable payload.
func invalid(raw any) Envelope {
	return newEnvelope(http.StatusBadRequest, raw, MsgInvalidReservation)
}

// AbsenceReason reports 4xx envelopes as absent results.
func (e Envelope) AbsenceReason() (string, bool) {
	if strings.HasPrefix(e.Code, "4") {
		return "status code " + e.Code, true
	}
	return "", false
}

// Status returns the numeric status.  The zero Envelope, which is what a
// wrapped call returns after suppressing a client-input fault, maps to a
// 400 "Invalid reservation".
func (e Envelope) Status() (int, Envelope) {
	if e.Code == "" {
		e = invalid(nil)
	}
	status, err := strconv.Atoi(e.Code)
	if err != nil {
		return http.StatusInternalServerError, e
	}
	return status, e
}
