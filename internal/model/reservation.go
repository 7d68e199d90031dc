package model

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/iliyamo/booking-reservation/internal/apperror"
)

// DateTimeLayout is the canonical textual form of Reservation.ScheduledFor.
const DateTimeLayout = "2006-01-02 15:04:05"

// Field bounds for a Reservation.
const (
	MinNameLength  = 2
	MaxNameLength  = 20
	MaxEmailLength = 60
	MinPartySize   = 1
	MaxPartySize   = 6
)

// Defaults used by ReservationRef for fields the caller did not supply.
const (
	DefaultName         = "UNPROVIDED"
	DefaultEmail        = "unprovided@unprovided.com"
	DefaultScheduledFor = "1998-06-14 13:12:00"
	DefaultPartySize    = 1
)

// Validation messages returned inside apperror.ValidationError.
const (
	MsgInvalidName      = "name must be 2-20 characters"
	MsgEmailTooLong     = "email field cannot exceed 60 characters"
	MsgInvalidEmail     = "Invalid email format"
	MsgInvalidDate      = "Invalid date format"
	MsgInvalidPartySize = "Party size must be between 1 and 6"
)

var (
	// domain labels take any Unicode letter or digit, so "ab@exämple.com" is valid
	emailPattern    = regexp.MustCompile(`^[a-z0-9]+[\._]?[a-z0-9]+[@][\p{L}\p{N}_]+[.][\p{L}\p{N}_]{2,3}$`)
	dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)
)

// Reservation is a booking held by a named party for a given date and time.
// Every field is validated when it is assigned, so a *Reservation obtained
// from NewReservation or ReservationRef always satisfies its invariants.
//
// Fields:
//  id           – reservations.id, nil until the store assigns it.
//  name         – reservations.name, 2-20 characters.
//  email        – reservations.email, at most 60 characters.
//  scheduledFor – reservations.scheduled_for in DateTimeLayout.
//  partySize    – reservations.party_size, MinPartySize..MaxPartySize.
type Reservation struct {
	id           *int64
	name         string
	email        string
	scheduledFor string
	partySize    int
}

// View is the transport form of a Reservation.
type View struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	DateTime string `json:"datetime"`
	Size     int    `json:"size"`
}

// NewReservation builds a Reservation, running each field validator in
// declaration order.  The first violated invariant aborts construction.
func NewReservation(id *int64, name, email, scheduledFor string, partySize int) (*Reservation, error) {
	r := &Reservation{}
	if id != nil {
		v := *id
		r.id = &v
	}
	if err := r.SetName(name); err != nil {
		return nil, err
	}
	if err := r.SetEmail(email); err != nil {
		return nil, err
	}
	if err := r.SetScheduledFor(scheduledFor); err != nil {
		return nil, err
	}
	if err := r.SetPartySize(partySize); err != nil {
		return nil, err
	}
	return r, nil
}

// ReservationRef returns a Reservation that only identifies a record.  The
// remaining fields carry the package defaults, which satisfy every invariant.
func ReservationRef(id int64) *Reservation {
	return &Reservation{
		id:           &id,
		name:         DefaultName,
		email:        DefaultEmail,
		scheduledFor: DefaultScheduledFor,
		partySize:    DefaultPartySize,
	}
}

// ID returns the store identifier and whether one has been assigned.
func (r *Reservation) ID() (int64, bool) {
	if r.id == nil {
		return 0, false
	}
	return *r.id, true
}

// AssignID records the identifier generated by the store.  An identifier
// is immutable once set, so later calls are ignored.
func (r *Reservation) AssignID(id int64) {
	if r.id == nil {
		r.id = &id
	}
}

func (r *Reservation) Name() string         { return r.name }
func (r *Reservation) Email() string        { return r.email }
func (r *Reservation) ScheduledFor() string { return r.scheduledFor }
func (r *Reservation) PartySize() int       { return r.partySize }

// ScheduledTime parses ScheduledFor.  The value was validated on
// assignment, so the error is only non-nil for a zero Reservation.
func (r *Reservation) ScheduledTime() (time.Time, error) {
	return time.Parse(DateTimeLayout, r.scheduledFor)
}

func (r *Reservation) SetName(name string) error {
	if n := utf8.RuneCountInString(name); n < MinNameLength || n > MaxNameLength {
		return apperror.NewValidationError("name", MsgInvalidName)
	}
	r.name = name
	return nil
}

func (r *Reservation) SetEmail(email string) error {
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return apperror.NewValidationError("email", MsgEmailTooLong)
	}
	if !emailPattern.MatchString(email) {
		return apperror.NewValidationError("email", MsgInvalidEmail)
	}
	r.email = email
	return nil
}

// SetScheduledFor accepts only the literal YYYY-MM-DD HH:MM:SS form of a
// date that exists on the calendar (February 29 only in leap years).
func (r *Reservation) SetScheduledFor(value string) error {
	if !dateTimePattern.MatchString(value) {
		return apperror.NewValidationError("datetime", MsgInvalidDate)
	}
	if _, err := time.Parse(DateTimeLayout, value); err != nil {
		return apperror.NewValidationError("datetime", MsgInvalidDate)
	}
	r.scheduledFor = value
	return nil
}

func (r *Reservation) SetPartySize(size int) error {
	if size < MinPartySize || size > MaxPartySize {
		return apperror.NewValidationError("size", MsgInvalidPartySize)
	}
	r.partySize = size
	return nil
}

// Serialize returns the field-keyed transport form of r.
func (r *Reservation) Serialize() View {
	v := View{
		Name:     r.name,
		Email:    r.email,
		DateTime: r.scheduledFor,
		Size:     r.partySize,
	}
	if r.id != nil {
		id := *r.id
		v.ID = &id
	}
	return v
}
