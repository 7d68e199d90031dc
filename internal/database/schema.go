package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const mysqlSchema = `CREATE TABLE IF NOT EXISTS reservations (
    id            BIGINT      NOT NULL AUTO_INCREMENT PRIMARY KEY,
    name          VARCHAR(20) NOT NULL,
    email         VARCHAR(60) NOT NULL,
    scheduled_for DATETIME    NOT NULL,
    party_size    INT         NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const sqliteSchema = `CREATE TABLE IF NOT EXISTS reservations (
    id            INTEGER     PRIMARY KEY AUTOINCREMENT,
    name          VARCHAR(20) NOT NULL,
    email         VARCHAR(60) NOT NULL,
    scheduled_for DATETIME    NOT NULL,
    party_size    INTEGER     NOT NULL
)`

// EnsureSchema creates the reservations table when it does not exist yet.
// The DDL is picked by the driver the handle was opened with.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	var ddl string
	switch db.DriverName() {
	case "mysql":
		ddl = mysqlSchema
	case "sqlite":
		ddl = sqliteSchema
	default:
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create reservations table: %w", err)
	}
	return nil
}
