package database

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// DefaultMigrationsDir is where goose migrations live relative to the
// repository root.
const DefaultMigrationsDir = "migrations"

// Migrate applies all pending goose migrations from dir. It opens its own
// database/sql connection because goose does not speak pgxpool.
func Migrate(connString, dir string) error {
	if dir == "" {
		dir = DefaultMigrationsDir
	}

	db, err := sql.Open("pgx", connString)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToOpenMigrationConn, err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToApplyMigrations, err)
	}
	return nil
}
