package dbrule

import (
	"context"

	"github.com/dmitrymomot/dbvalidate/pkg/datasource"
	"github.com/dmitrymomot/dbvalidate/pkg/validator"
)

// Value is the set of field value types the rules understand. String and
// numeric fields behave identically; the type parameter only fixes what the
// callbacks receive.
type Value interface {
	~string | validator.Numeric
}

// CheckFunc is a custom lookup. It returns true when the field passes.
// A returned error is propagated to the caller unchanged.
type CheckFunc[T Value] func(ctx context.Context, src datasource.Source, value T, field *validator.Field) (bool, error)

// FilterFunc adds predicates to the lookup query before it runs. Predicates
// are ANDed with the equality check on the column.
type FilterFunc[T Value] func(ctx context.Context, q datasource.Query, value T, field *validator.Field) error

// Options describes a lookup of value in Table.Column.
type Options[T Value] struct {
	Table  string
	Column string

	// Connection names the data source connection; empty means the default one.
	Connection string

	// CaseInsensitive compares both sides folded to lower case by the database.
	// On backends whose collation already ignores case this changes nothing.
	// Only string values can be folded; Query panics when it is set for a numeric T.
	CaseInsensitive bool

	Filter FilterFunc[T]
}

type variant uint8

const (
	variantQuery variant = iota + 1
	variantCheck
)

// Config selects how a rule decides: through a custom CheckFunc or through a
// table lookup described by Options. Build it with Check or Query; the zero
// value is not usable.
type Config[T Value] struct {
	variant variant
	check   CheckFunc[T]
	options Options[T]
}

// Check configures a rule backed by a custom lookup function.
// It panics when fn is nil.
func Check[T Value](fn CheckFunc[T]) Config[T] {
	if fn == nil {
		panic("dbrule: nil check function")
	}
	return Config[T]{variant: variantCheck, check: fn}
}

// Query configures a rule backed by a lookup of the value in a table column.
// It panics when Table or Column is empty or when CaseInsensitive is set for a
// numeric T, so misconfigured schemas fail at definition time rather than on
// the first request.
func Query[T Value](opts Options[T]) Config[T] {
	if opts.Table == "" || opts.Column == "" {
		panic("dbrule: table and column are required")
	}
	if opts.CaseInsensitive && !isString[T]() {
		panic("dbrule: case-insensitive lookups need a string value type")
	}
	return Config[T]{variant: variantQuery, options: opts}
}
