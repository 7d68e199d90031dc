// Package queue defines the reservation lifecycle events exchanged over
// RabbitMQ together with their publisher and the audit consumer.
package queue

import (
	"time"

	"github.com/iliyamo/booking-reservation/internal/model"
)

// DefaultQueue is the durable queue lifecycle events are routed to.
const DefaultQueue = "reservations.events"

// EventType names a reservation lifecycle transition.
type EventType string

const (
	EventReserved  EventType = "reservation.reserved"
	EventEdited    EventType = "reservation.edited"
	EventCancelled EventType = "reservation.cancelled"
)

// ReservationEvent is published after a reservation change is committed.
// Cancelled events carry only the id.
type ReservationEvent struct {
	Type          EventType `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	Name          string    `json:"name,omitempty"`
	Email         string    `json:"email,omitempty"`
	DateTime      string    `json:"datetime,omitempty"`
	Size          int       `json:"size,omitempty"`
	OccurredAt    string    `json:"occurred_at"`
}

// NewReservationEvent builds an event from a serialized reservation.
func NewReservationEvent(t EventType, v model.View, at time.Time) ReservationEvent {
	ev := ReservationEvent{Type: t, OccurredAt: at.UTC().Format(time.RFC3339)}
	if v.ID != nil {
		ev.ReservationID = *v.ID
	}
	if t != EventCancelled {
		ev.Name = v.Name
		ev.Email = v.Email
		ev.DateTime = v.DateTime
		ev.Size = v.Size
	}
	return ev
}
