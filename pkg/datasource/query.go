package datasource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/dbvalidate/pkg/logger"
)

// Row is a single result row keyed by column name.
type Row map[string]any

// Expr is a raw SQL fragment with its own bindings. When passed as a binding to
// WhereRaw (or as a value to Where) it is inlined in place of its "?" marker.
type Expr struct {
	SQL      string
	Bindings []any
}

// Query is a single-table SELECT under construction.
// Methods modify the receiver and return it for chaining; predicates are
// combined with AND in the order they were added.
type Query interface {
	From(table string) Query
	Select(columns ...string) Query
	Where(column string, value any) Query
	WhereNot(column string, value any) Query
	WhereNull(column string) Query
	WhereNotNull(column string) Query
	WhereIn(column string, values ...any) Query
	// WhereRaw adds a predicate written in SQL; "?" markers are replaced by bindings.
	WhereRaw(sql string, bindings ...any) Query
	Dialect() Dialect
	// First runs the query with LIMIT 1. It returns nil, nil when no row matches.
	First(ctx context.Context) (Row, error)
}

type clause struct {
	sql  string
	args []any
	raw  bool
}

// Builder is the Query implementation returned by Manager.
type Builder struct {
	conn    string
	dialect Dialect
	run     runner
	log     *slog.Logger

	table   string
	columns []string
	wheres  []clause
}

func newBuilder(name string, c Conn, log *slog.Logger) *Builder {
	return &Builder{conn: name, dialect: c.dialect, run: c.run, log: log}
}

func (b *Builder) From(table string) Query {
	b.table = table
	return b
}

func (b *Builder) Select(columns ...string) Query {
	b.columns = append(b.columns, columns...)
	return b
}

func (b *Builder) Where(column string, value any) Query {
	if value == nil {
		return b.WhereNull(column)
	}
	return b.add(b.dialect.QuoteIdent(column)+" = ?", value)
}

func (b *Builder) WhereNot(column string, value any) Query {
	if value == nil {
		return b.WhereNotNull(column)
	}
	return b.add(b.dialect.QuoteIdent(column)+" <> ?", value)
}

func (b *Builder) WhereNull(column string) Query {
	return b.add(b.dialect.QuoteIdent(column) + " IS NULL")
}

func (b *Builder) WhereNotNull(column string) Query {
	return b.add(b.dialect.QuoteIdent(column) + " IS NOT NULL")
}

func (b *Builder) WhereIn(column string, values ...any) Query {
	if len(values) == 0 {
		return b.add("1 = 0")
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	return b.add(b.dialect.QuoteIdent(column)+" IN ("+marks+")", values...)
}

func (b *Builder) WhereRaw(sql string, bindings ...any) Query {
	b.wheres = append(b.wheres, clause{sql: sql, args: bindings, raw: true})
	return b
}

func (b *Builder) Dialect() Dialect {
	return b.dialect
}

func (b *Builder) add(sql string, args ...any) *Builder {
	b.wheres = append(b.wheres, clause{sql: sql, args: args})
	return b
}

// ToSQL renders the statement and its positional arguments.
func (b *Builder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, ErrNoTable
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sb.WriteString("*")
	} else {
		for i, col := range b.columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(b.dialect.QuoteIdent(col))
		}
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.dialect.QuoteIdent(b.table))

	p := &params{dialect: b.dialect}
	for i, w := range b.wheres {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		frag, err := p.bind(w.sql, w.args)
		if err != nil {
			return "", nil, err
		}
		if w.raw {
			frag = "(" + frag + ")"
		}
		sb.WriteString(frag)
	}
	return sb.String(), p.args, nil
}

func (b *Builder) First(ctx context.Context) (Row, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	query += " LIMIT 1"

	start := time.Now()
	row, err := b.run.queryRow(ctx, query, args)
	b.log.DebugContext(ctx, "datasource query",
		logger.Connection(b.conn),
		logger.Table(b.table),
		slog.String("dialect", b.dialect.Name()),
		logger.Query(query, len(args), time.Since(start)),
		slog.Bool("found", row != nil),
		logger.Error(err),
	)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return row, nil
}

// params accumulates positional arguments while "?" markers are rewritten.
type params struct {
	dialect Dialect
	args    []any
}

// bind replaces every "?" outside string literals and quoted identifiers
// with the next binding. Expr bindings are expanded recursively.
func (p *params) bind(fragment string, bindings []any) (string, error) {
	var sb strings.Builder
	next := 0
	var quote byte

	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		switch {
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote != 0 && c == quote:
			quote = 0
		}
		if c != '?' || quote != 0 {
			sb.WriteByte(c)
			continue
		}

		if next >= len(bindings) {
			return "", fmt.Errorf("%w: %q expects more than %d bindings", ErrBindingMismatch, fragment, len(bindings))
		}
		arg := bindings[next]
		next++

		if e, ok := arg.(Expr); ok {
			inner, err := p.bind(e.SQL, e.Bindings)
			if err != nil {
				return "", err
			}
			sb.WriteString(inner)
			continue
		}

		p.args = append(p.args, arg)
		sb.WriteString(p.dialect.Placeholder(len(p.args)))
	}

	if next != len(bindings) {
		return "", fmt.Errorf("%w: %q got %d bindings for %d markers", ErrBindingMismatch, fragment, len(bindings), next)
	}
	return sb.String(), nil
}
