package datasource

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNoConnections            = errors.New("datasource: no connections configured")
	ErrUnknownConnection        = errors.New("datasource: unknown connection")
	ErrUnknownDialect           = errors.New("datasource: unknown dialect")
	ErrNoTable                  = errors.New("datasource: query has no table")
	ErrBindingMismatch          = errors.New("datasource: placeholder and binding count mismatch")
	ErrQueryFailed              = errors.New("datasource: query failed")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
	ErrMigrationsDirNotFound    = errors.New("migrations directory not found")
	ErrMigrationPathNotProvided = errors.New("migration path not provided")
)

// IsDuplicateKeyError detects PostgreSQL unique constraint violations (SQLSTATE 23505).
// A passing unique rule does not reserve the value, so inserts that race it still end here.
func IsDuplicateKeyError(err error) bool {
	return pgCode(err) == "23505"
}

// IsUndefinedTableError detects a lookup against a missing relation (SQLSTATE 42P01),
// usually a typo in a rule's table name.
func IsUndefinedTableError(err error) bool {
	return pgCode(err) == "42P01"
}

// IsUndefinedColumnError detects a lookup against a missing column (SQLSTATE 42703).
func IsUndefinedColumnError(err error) bool {
	return pgCode(err) == "42703"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
