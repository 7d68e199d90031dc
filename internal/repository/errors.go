// Package repository implements the persistence gateway for reservations.
// The SQL implementation runs on MySQL in production and on SQLite for
// local runs; the memory implementation backs tests and DB_DRIVER=memory.
// Store failures never leave this package as raw driver errors: they are
// wrapped in *apperror.DatabaseError naming the step that failed.
package repository

import (
	"github.com/iliyamo/booking-reservation/internal/apperror"
)

// DeleteResult is the outcome of ReservationGateway.Delete.
type DeleteResult int

const (
	DeleteSuccess DeleteResult = iota + 1
	DeleteMissing
)

func (r DeleteResult) String() string {
	switch r {
	case DeleteSuccess:
		return "DeleteResult.SUCCESS"
	case DeleteMissing:
		return "DeleteResult.MISSING"
	}
	return "DeleteResult.UNKNOWN"
}

// AbsenceReason marks DeleteMissing as a warning outcome for the
// interceptor.
func (r DeleteResult) AbsenceReason() (string, bool) {
	if r == DeleteMissing {
		return r.String(), true
	}
	return "", false
}

func storeError(op string, err error) error {
	return apperror.NewDatabaseError(op, err)
}
