package datasource

import (
	"fmt"
	"strings"
)

// Dialect isolates the SQL that differs between backends.
type Dialect interface {
	// Name returns "postgres" or "sqlite".
	Name() string

	// Placeholder returns the bound parameter marker for the given 1-based index.
	Placeholder(index int) string

	// QuoteIdent quotes a possibly schema-qualified identifier.
	QuoteIdent(name string) string

	// Fold wraps expr in the backend's case-folding function, used to build
	// case-insensitive equality predicates.
	Fold(expr string) string
}

var (
	Postgres Dialect = postgresDialect{}
	SQLite   Dialect = sqliteDialect{}
)

// DialectFor maps a driver name to its Dialect.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, driver)
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Placeholder(index int) string { return fmt.Sprintf("$%d", index) }

func (postgresDialect) QuoteIdent(name string) string { return quoteIdent(name) }

func (postgresDialect) Fold(expr string) string { return "lower(" + expr + ")" }

// sqliteDialect folds with lower(), which only folds ASCII letters unless the
// ICU extension is loaded.
type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Placeholder(index int) string { return fmt.Sprintf("?%d", index) }

func (sqliteDialect) QuoteIdent(name string) string { return quoteIdent(name) }

func (sqliteDialect) Fold(expr string) string { return "lower(" + expr + ")" }

func quoteIdent(name string) string {
	if name == "*" {
		return name
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if p == "*" {
			continue
		}
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}
