package dbrule_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dbvalidate/internal/testutil"
	"github.com/dmitrymomot/dbvalidate/pkg/datasource"
	"github.com/dmitrymomot/dbvalidate/pkg/dbrule"
)

// newSQLite opens an in-memory database with the users table migrated.
func newSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := datasource.OpenSQLite(ctx, datasource.Config{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = datasource.Migrate(ctx, db, datasource.SQLite, os.DirFS("testdata/migrations"), testutil.NewTestLogger(t))
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *sql.DB, id int64, username, email string, countryID any) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO users (id, username, email, country_id) VALUES (?, ?, ?, ?)",
		id, username, email, countryID,
	)
	require.NoError(t, err)
}

// newRules wires rules to a single sqlite connection named "primary".
func newRules(t *testing.T, db *sql.DB) *dbrule.Rules {
	t.Helper()
	src, err := datasource.New(
		datasource.WithConnection("primary", datasource.SQL(db, datasource.SQLite)),
		datasource.WithLogger(testutil.NewTestLogger(t)),
	)
	require.NoError(t, err)
	return dbrule.New(src)
}

// newMockRules wires rules to a sqlmock connection that matches SQL exactly.
func newMockRules(t *testing.T, d datasource.Dialect) (*dbrule.Rules, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	src, err := datasource.New(datasource.WithConnection("primary", datasource.SQL(db, d)))
	require.NoError(t, err)
	return dbrule.New(src), mock
}

func usersEmail() dbrule.Options[string] {
	return dbrule.Options[string]{Table: "users", Column: "email"}
}
