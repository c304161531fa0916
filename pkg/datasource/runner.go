package datasource

import (
	"bytes"
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
)

// SQLQuerier is implemented by *sql.DB, *sql.Tx and *sql.Conn.
type SQLQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// PgxQuerier is implemented by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// runner executes a statement and returns its first row, or nil when empty.
type runner interface {
	queryRow(ctx context.Context, query string, args []any) (Row, error)
}

type sqlRunner struct {
	q SQLQuerier
}

func (r sqlRunner) queryRow(ctx context.Context, query string, args []any) (Row, error) {
	//nolint:rowserrcheck // rows.Err is checked on every return path below
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, rows.Err()
	}

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	row := make(Row, len(cols))
	for i, col := range cols {
		// drivers may reuse the buffer after Close
		if b, ok := values[i].([]byte); ok {
			values[i] = bytes.Clone(b)
		}
		row[col] = values[i]
	}
	return row, rows.Err()
}

type pgxRunner struct {
	q PgxQuerier
}

func (r pgxRunner) queryRow(ctx context.Context, query string, args []any) (Row, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	values, err := rows.Values()
	if err != nil {
		return nil, err
	}
	fields := rows.FieldDescriptions()
	row := make(Row, len(fields))
	for i, fd := range fields {
		row[fd.Name] = values[i]
	}

	rows.Close()
	return row, rows.Err()
}
