package dbrule

import (
	"context"

	"github.com/dmitrymomot/dbvalidate/pkg/datasource"
	"github.com/dmitrymomot/dbvalidate/pkg/validator"
)

// checkExistence reports whether a row with value in opts.Column exists.
// Errors from the data source and the filter are returned as they are.
func checkExistence[T Value](ctx context.Context, src datasource.Source, opts Options[T], value T, field *validator.Field) (bool, error) {
	q, err := src.Connection(opts.Connection)
	if err != nil {
		return false, err
	}
	q = q.From(opts.Table).Select(opts.Column)

	if opts.CaseInsensitive {
		d := q.Dialect()
		q = q.WhereRaw(d.Fold(d.QuoteIdent(opts.Column))+" = ?", src.Raw(d.Fold("?"), value))
	} else {
		q = q.Where(opts.Column, value)
	}

	if opts.Filter != nil {
		if err := opts.Filter(ctx, q, value, field); err != nil {
			return false, err
		}
	}

	row, err := q.First(ctx)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}
