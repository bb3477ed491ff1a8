package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// goose keeps its base FS and dialect in package globals
var gooseMu sync.Mutex

const migrationsDir = "migrations"

// MigrationCommands lists the goose commands Migrate accepts.
var MigrationCommands = []string{"up", "down", "status", "version", "reset"}

// Migrate runs a goose command against the embedded migrations using a
// database/sql handle borrowed from pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, command string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return MigrateDB(ctx, db, command)
}

// MigrateDB runs a goose command on an existing *sql.DB.
func MigrateDB(ctx context.Context, db *sql.DB, command string) error {
	if !isMigrationCommand(command) {
		return fmt.Errorf("unsupported migration command %q", command)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, migrationsDir); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

func isMigrationCommand(command string) bool {
	for _, c := range MigrationCommands {
		if c == command {
			return true
		}
	}
	return false
}
