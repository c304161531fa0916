// Package datasource provides the small query layer the database-backed
// validation rules run on: named connections, a single-table SELECT builder
// and per-backend SQL dialects.
//
// # Architecture
//
//   - Source / Manager – hands out a Query for a named connection and builds
//     raw expressions. Manager is immutable after New and safe for concurrent use.
//   - Query / Builder – accumulates predicates (ANDed in order) and runs the
//     statement with LIMIT 1 through First. Values are always sent as bound
//     parameters; "?" markers in raw SQL are rewritten for the dialect.
//   - Dialect – placeholders, identifier quoting and case folding for
//     PostgreSQL ($n) and SQLite (?n).
//   - Conn – a handle plus its dialect: SQL wraps anything from database/sql,
//     Pgx wraps a pgx pool, connection or transaction.
//
// Open, ConnectPostgres and OpenSQLite bootstrap handles from Config, whose
// fields are read from environment variables, and Migrate applies goose
// migrations.
//
// # Usage
//
//	db, err := datasource.Open(ctx, cfg, slog.Default())
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	src, err := datasource.New(
//	    datasource.WithConnection(cfg.ConnectionName, db.Conn),
//	    datasource.WithLogger(log),
//	)
//	q, _ := src.Connection("")
//	row, err := q.From("users").Select("email").Where("email", "foo@bar.com").First(ctx)
//
// # Error Handling
//
// Driver errors are joined with ErrQueryFailed, so both errors.Is(err,
// ErrQueryFailed) and checks against the driver error work.
package datasource
