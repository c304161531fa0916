package datasource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pressly/goose/v3"
)

// migrationLogger is the subset of *slog.Logger used for migration output.
type migrationLogger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MigrateDir applies the goose migrations found in dir.
func MigrateDir(ctx context.Context, db *sql.DB, d Dialect, dir string, log migrationLogger) error {
	if dir == "" {
		return errors.Join(ErrFailedToApplyMigrations, ErrMigrationPathNotProvided)
	}
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return errors.Join(ErrMigrationsDirNotFound, err)
		}
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return Migrate(ctx, db, d, os.DirFS(dir), log)
}

// Migrate applies every pending goose migration in fsys, whose root must hold
// the migration files.
func Migrate(ctx context.Context, db *sql.DB, d Dialect, fsys fs.FS, log migrationLogger) error {
	if fsys == nil {
		return errors.Join(ErrFailedToApplyMigrations, ErrMigrationPathNotProvided)
	}

	var dialect goose.Dialect
	switch d.Name() {
	case "postgres":
		dialect = goose.DialectPostgres
	case "sqlite":
		dialect = goose.DialectSQLite3
	default:
		return errors.Join(ErrFailedToApplyMigrations, fmt.Errorf("%w: %q", ErrUnknownDialect, d.Name()))
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	for _, r := range results {
		if r.Error != nil {
			log.ErrorContext(ctx, "migration failed", "version", r.Source.Version, "path", r.Source.Path, "error", r.Error)
			continue
		}
		log.InfoContext(ctx, "migration applied", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}
