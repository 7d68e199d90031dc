package repository

import (
	"context"

	"github.com/iliyamo/booking-reservation/internal/model"
)

// ReservationGateway stores, retrieves and mutates reservations inside one
// unit of work.  Not-found is reported through return values (nil from
// Update, DeleteMissing from Delete), never as an error.  Every store
// failure is returned as *apperror.DatabaseError.
type ReservationGateway interface {
	// Create stages an insert and assigns the generated id to r.  It does
	// not commit.
	Create(ctx context.Context, r *model.Reservation) error
	// ReadAll returns every reservation ordered by id.  The slice is empty,
	// never nil, when the table is empty.
	ReadAll(ctx context.Context) ([]*model.Reservation, error)
	// Update overwrites the mutable fields of the record with r's id and
	// returns r itself, or nil when no such record exists.
	Update(ctx context.Context, r *model.Reservation) (*model.Reservation, error)
	// Delete removes the record with r's id.
	Delete(ctx context.Context, r *model.Reservation) (DeleteResult, error)
}

// UnitOfWork scopes the staged changes of one request.  Rollback after a
// successful Commit is a no-op, so callers may always defer it.
type UnitOfWork interface {
	Reservations() ReservationGateway
	Commit() error
	Rollback() error
}

// Store opens units of work against a backing database.
type Store interface {
	Begin(ctx context.Context) (UnitOfWork, error)
	Ping(ctx context.Context) error
}
