package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/booking-reservation/internal/model"
)

// SQLStore opens units of work backed by database transactions.  Queries
// use "?" placeholders and are rebound for the driver, so the same code
// runs on MySQL and SQLite.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore returns a new SQLStore bound to the given database.
func NewSQLStore(db *sqlx.DB) *SQLStore { return &SQLStore{db: db} }

// DB exposes the underlying handle for schema management.
func (s *SQLStore) DB() *sqlx.DB { return s.db }

// Begin starts a transaction.
func (s *SQLStore) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storeError("begin", err)
	}
	return &sqlUnit{tx: tx, repo: &ReservationRepo{tx: tx}}, nil
}

// Ping verifies the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return storeError("ping", s.db.PingContext(ctx))
}

type sqlUnit struct {
	tx   *sqlx.Tx
	repo *ReservationRepo
}

func (u *sqlUnit) Reservations() ReservationGateway { return u.repo }

func (u *sqlUnit) Commit() error { return storeError("commit", u.tx.Commit()) }

func (u *sqlUnit) Rollback() error {
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return storeError("rollback", err)
	}
	return nil
}

// ReservationRepo provides CRUD operations for reservations within one
// transaction.  scheduled_for is written in model.DateTimeLayout and read
// back in the same form whether the driver returns DATETIME columns as
// time.Time (MySQL with parseTime, SQLite) or as text.
type ReservationRepo struct {
	tx *sqlx.Tx
}

// reservationRecord mirrors the reservations table.
type reservationRecord struct {
	ID           int64    `db:"id"`
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	ScheduledFor dateTime `db:"scheduled_for"`
	PartySize    int      `db:"party_size"`
}

func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (name, email, scheduled_for, party_size) VALUES (?, ?, ?, ?)`
	result, err := r.tx.ExecContext(ctx, r.tx.Rebind(q), res.Name(), res.Email(), res.ScheduledFor(), res.PartySize())
	if err != nil {
		return storeError("insert reservation", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storeError("insert reservation", err)
	}
	res.AssignID(id)
	return nil
}

func (r *ReservationRepo) ReadAll(ctx context.Context) ([]*model.Reservation, error) {
	const q = `SELECT id, name, email, scheduled_for, party_size FROM reservations ORDER BY id`
	var rows []reservationRecord
	if err := r.tx.SelectContext(ctx, &rows, q); err != nil {
		return nil, storeError("select reservations", err)
	}
	out := make([]*model.Reservation, 0, len(rows))
	for _, row := range rows {
		id := row.ID
		res, err := model.NewReservation(&id, row.Name, row.Email, string(row.ScheduledFor), row.PartySize)
		if err != nil {
			// a stored row that no longer satisfies the entity invariants
			return nil, storeError(fmt.Sprintf("decode reservation %d", row.ID), err)
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	id, ok := res.ID()
	if !ok {
		return nil, nil
	}
	found, err := r.exists(ctx, id)
	if err != nil || !found {
		return nil, err
	}
	const q = `UPDATE reservations SET name = ?, email = ?, scheduled_for = ?, party_size = ? WHERE id = ?`
	if _, err := r.tx.ExecContext(ctx, r.tx.Rebind(q), res.Name(), res.Email(), res.ScheduledFor(), res.PartySize(), id); err != nil {
		return nil, storeError("update reservation", err)
	}
	return res, nil
}

func (r *ReservationRepo) Delete(ctx context.Context, res *model.Reservation) (DeleteResult, error) {
	id, ok := res.ID()
	if !ok {
		return DeleteMissing, nil
	}
	found, err := r.exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !found {
		return DeleteMissing, nil
	}
	const q = `DELETE FROM reservations WHERE id = ?`
	if _, err := r.tx.ExecContext(ctx, r.tx.Rebind(q), id); err != nil {
		return 0, storeError("delete reservation", err)
	}
	return DeleteSuccess, nil
}

// exists looks a record up by id.  There is no row lock: a concurrent
// writer may change the row between this read and the following write.
func (r *ReservationRepo) exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT id FROM reservations WHERE id = ?`
	var got int64
	err := r.tx.GetContext(ctx, &got, r.tx.Rebind(q), id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storeError("select reservation", err)
	}
	return true, nil
}

// dateTime scans a DATETIME column into model.DateTimeLayout text.
type dateTime string

func (d *dateTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = dateTime(v.Format(model.DateTimeLayout))
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		*d = ""
	default:
		return fmt.Errorf("unsupported scheduled_for type %T", src)
	}
	return nil
}

func (d *dateTime) parse(s string) error {
	for _, layout := range []string{model.DateTimeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = dateTime(t.Format(model.DateTimeLayout))
			return nil
		}
	}
	return fmt.Errorf("unparseable scheduled_for %q", s)
}
