package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/booking-reservation/internal/apperror"
)

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var vErr *apperror.ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	return vErr.Message
}

func TestNewReservation_RoundTrip(t *testing.T) {
	tests := []struct {
		name, email, when string
		size              int
	}{
		{"Jo", "jo@example.com", "2024-05-01 18:30:00", 1},
		{"Twenty Characters!!!", "a.b@example.com", "2024-02-29 10:00:00", 6},
		{"Marta Ruiz", "marta_ruiz99@mail.io", "2030-12-31 23:59:59", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReservation(nil, tt.name, tt.email, tt.when, tt.size)
			require.NoError(t, err)

			got := r.Serialize()
			assert.Nil(t, got.ID)
			assert.Equal(t, tt.name, got.Name)
			assert.Equal(t, tt.email, got.Email)
			assert.Equal(t, tt.when, got.DateTime)
			assert.Equal(t, tt.size, got.Size)
		})
	}
}

func TestNewReservation_KeepsID(t *testing.T) {
	id := int64(42)
	r, err := NewReservation(&id, "Jo", "jo@example.com", "2024-05-01 18:30:00", 2)
	require.NoError(t, err)

	id = 7 // the entity holds its own copy
	got, ok := r.ID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), got)
	require.NotNil(t, r.Serialize().ID)
	assert.Equal(t, int64(42), *r.Serialize().ID)
}

func TestSetName_Boundaries(t *testing.T) {
	tests := []struct {
		length int
		ok     bool
	}{
		{1, false},
		{2, true},
		{20, true},
		{21, false},
	}
	for _, tt := range tests {
		r := ReservationRef(1)
		err := r.SetName(strings.Repeat("n", tt.length))
		if tt.ok {
			assert.NoError(t, err, "length %d", tt.length)
			continue
		}
		assert.Equal(t, MsgInvalidName, validationMessage(t, err), "length %d", tt.length)
	}
}

func TestSetName_CountsRunes(t *testing.T) {
	r := ReservationRef(1)
	assert.NoError(t, r.SetName(strings.Repeat("é", 20)))
}

func TestSetEmail(t *testing.T) {
	long := strings.Repeat("a", 49) + "@example.com" // 61 characters
	require.Len(t, long, 61)

	tests := []struct {
		email string
		msg   string
	}{
		{"a.b@example.com", ""},
		{"jo_doe@mail.org", ""},
		{"ab@exämple.com", ""},
		{"ab@例え.jp", ""},
		{"ab@exa-mple.com", MsgInvalidEmail},
		{"bad-email", MsgInvalidEmail},
		{"Jo@example.com", MsgInvalidEmail},
		{"a@example.com", MsgInvalidEmail},
		{"jo@example.info", MsgInvalidEmail},
		{"jo..doe@example.com", MsgInvalidEmail},
		{long, MsgEmailTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			r := ReservationRef(1)
			err := r.SetEmail(tt.email)
			if tt.msg == "" {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, r.Email())
				return
			}
			assert.Equal(t, tt.msg, validationMessage(t, err))
			assert.Equal(t, DefaultEmail, r.Email(), "failed assignment must not mutate")
		})
	}
}

func TestSetScheduledFor(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"2024-02-29 10:00:00", true},
		{"2000-02-29 00:00:00", true},
		{"2023-02-29 10:00:00", false},
		{"1900-02-29 10:00:00", false},
		{"2024-04-31 10:00:00", false},
		{"2024-13-01 10:00:00", false},
		{"2024-01-01 24:00:00", false},
		{"2024-01-01T10:00:00", false},
		{"2024-1-01 10:00:00", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r := ReservationRef(1)
			err := r.SetScheduledFor(tt.value)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, MsgInvalidDate, validationMessage(t, err))
		})
	}
}

func TestSetPartySize(t *testing.T) {
	for size := -1; size <= 7; size++ {
		r := ReservationRef(1)
		err := r.SetPartySize(size)
		if size >= MinPartySize && size <= MaxPartySize {
			assert.NoError(t, err, "size %d", size)
			continue
		}
		assert.Equal(t, MsgInvalidPartySize, validationMessage(t, err), "size %d", size)
	}
}

func TestNewReservation_FirstViolationWins(t *testing.T) {
	_, err := NewReservation(nil, "x", "bad-email", "nope", 0)
	assert.Equal(t, MsgInvalidName, validationMessage(t, err))

	_, err = NewReservation(nil, "Jo", "bad-email", "nope", 0)
	assert.Equal(t, MsgInvalidEmail, validationMessage(t, err))

	_, err = NewReservation(nil, "Jo", "jo@example.com", "nope", 0)
	assert.Equal(t, MsgInvalidDate, validationMessage(t, err))

	_, err = NewReservation(nil, "Jo", "jo@example.com", "2024-01-01 10:00:00", 0)
	assert.Equal(t, MsgInvalidPartySize, validationMessage(t, err))
}

func TestReservationRef_Defaults(t *testing.T) {
	r := ReservationRef(9)
	v := r.Serialize()
	require.NotNil(t, v.ID)
	assert.Equal(t, int64(9), *v.ID)
	assert.Equal(t, DefaultName, v.Name)
	assert.Equal(t, DefaultEmail, v.Email)
	assert.Equal(t, DefaultScheduledFor, v.DateTime)
	assert.Equal(t, DefaultPartySize, v.Size)

	// defaults satisfy every invariant
	_, err := NewReservation(nil, DefaultName, DefaultEmail, DefaultScheduledFor, DefaultPartySize)
	assert.NoError(t, err)
}

func TestAssignID_Immutable(t *testing.T) {
	r, err := NewReservation(nil, "Jo", "jo@example.com", "2024-05-01 18:30:00", 2)
	require.NoError(t, err)
	_, ok := r.ID()
	assert.False(t, ok)

	r.AssignID(5)
	r.AssignID(6)
	id, ok := r.ID()
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)
}

func TestScheduledTime(t *testing.T) {
	r := ReservationRef(1)
	ts, err := r.ScheduledTime()
	require.NoError(t, err)
	assert.Equal(t, 1998, ts.Year())
	assert.Equal(t, DefaultScheduledFor, ts.Format(DateTimeLayout))
}
