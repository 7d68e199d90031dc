package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema_SQLite(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, db))
	// idempotent
	require.NoError(t, EnsureSchema(ctx, db))

	var n int
	require.NoError(t, db.GetContext(ctx, &n, `SELECT COUNT(*) FROM reservations`))
	assert.Zero(t, n)
}

func TestEnsureSchema_MySQLDDL(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS reservations").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), sqlx.NewDb(mockDB, "mysql")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_UnknownDriver(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	err = EnsureSchema(context.Background(), sqlx.NewDb(mockDB, "oracle"))
	assert.ErrorContains(t, err, "oracle")
}
