package datasource

import (
	"fmt"
	"log/slog"
)

// Source hands out query builders for named connections.
type Source interface {
	// Connection starts a query on the named connection; "" selects the default.
	Connection(name string) (Query, error)

	// Raw builds an Expr. Values in bindings are always sent as parameters.
	Raw(sql string, bindings ...any) Expr
}

// Conn is a database handle paired with its dialect.
type Conn struct {
	dialect Dialect
	run     runner
}

// SQL wraps a database/sql handle (*sql.DB, *sql.Tx, *sql.Conn).
func SQL(q SQLQuerier, d Dialect) Conn {
	return Conn{dialect: d, run: sqlRunner{q: q}}
}

// Pgx wraps a native pgx handle (*pgxpool.Pool, *pgx.Conn, pgx.Tx).
func Pgx(q PgxQuerier) Conn {
	return Conn{dialect: Postgres, run: pgxRunner{q: q}}
}

func (c Conn) Dialect() Dialect {
	return c.dialect
}

// Option configures a Manager.
type Option func(*Manager)

// WithConnection registers c under name. The first registered connection is
// the default unless WithDefault says otherwise.
func WithConnection(name string, c Conn) Option {
	return func(m *Manager) {
		if _, ok := m.conns[name]; !ok {
			m.order = append(m.order, name)
		}
		m.conns[name] = c
	}
}

// WithDefault selects the connection used when no name is given.
func WithDefault(name string) Option {
	return func(m *Manager) { m.def = name }
}

// WithLogger sets the logger used for query tracing at debug level.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// Manager is the Source implementation over one or more connections.
// It is immutable after New and safe for concurrent use.
type Manager struct {
	conns map[string]Conn
	order []string
	def   string
	log   *slog.Logger
}

// New creates a Manager from the given options.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		conns: make(map[string]Conn),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}

	if len(m.conns) == 0 {
		return nil, ErrNoConnections
	}
	if m.def == "" {
		m.def = m.order[0]
	}
	if _, ok := m.conns[m.def]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownConnection, m.def)
	}
	return m, nil
}

func (m *Manager) Connection(name string) (Query, error) {
	if name == "" {
		name = m.def
	}
	c, ok := m.conns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnection, name)
	}
	return newBuilder(name, c, m.log), nil
}

func (m *Manager) Raw(sql string, bindings ...any) Expr {
	return Expr{SQL: sql, Bindings: bindings}
}

// Default returns the name of the default connection.
func (m *Manager) Default() string {
	return m.def
}
