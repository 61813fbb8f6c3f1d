// Package db owns the database schema and applies it with goose.
package db

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationTable is the goose version table name.
const MigrationTable = "schema_migrations"

// Migrate applies all pending migrations to the database behind pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	// The *sql.DB shares pool's connections and must not be closed here.
	sqlDB := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{logger})
	goose.SetTableName(MigrationTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// gooseLogger routes goose output through slog instead of the standard
// logger, and never exits the process.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...), "component", "migrations")
}

func (l gooseLogger) Fatalf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...), "component", "migrations")
}
