package validator

import (
	"context"
	"maps"

	"golang.org/x/sync/errgroup"
)

// FieldRule checks a single field. Validation failures are signalled through
// Field.Report; a returned error means the check itself could not be performed
// (database down, broken query, bad configuration) and aborts the whole run.
type FieldRule func(ctx context.Context, f *Field) error

// FieldSpec binds an input key to the rules that validate it.
type FieldSpec struct {
	Name  string
	Rules []FieldRule
}

// For declares the rules for the field stored under name.
func For(name string, rules ...FieldRule) FieldSpec {
	return FieldSpec{Name: name, Rules: rules}
}

// Option configures a Validator.
type Option func(*Validator)

// WithMessages overrides message templates by rule identifier,
// e.g. {"database.unique": "{{ field }} is taken"}.
func WithMessages(messages map[string]string) Option {
	return func(v *Validator) {
		if len(messages) == 0 {
			return
		}
		if v.messages == nil {
			v.messages = make(map[string]string, len(messages))
		}
		maps.Copy(v.messages, messages)
	}
}

// WithConcurrency limits how many fields are validated at the same time.
// Values below 1 remove the limit.
func WithConcurrency(n int) Option {
	return func(v *Validator) {
		if n < 1 {
			n = -1
		}
		v.concurrency = n
	}
}

// Validator runs field rules against an input map.
// It holds no per-run state and can be shared between goroutines.
type Validator struct {
	messages    map[string]string
	concurrency int
}

// New creates a Validator. By default fields are validated concurrently without limit.
func New(opts ...Option) *Validator {
	v := &Validator{concurrency: -1}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultValidator = New()

// Validate runs fields with the default Validator.
func Validate(ctx context.Context, data map[string]any, fields ...FieldSpec) error {
	return defaultValidator.Validate(ctx, data, fields...)
}

// Validate checks every field of data that has a FieldSpec.
// Rules of one field run in declaration order; different fields run concurrently.
// The first rule error cancels the run and is returned unchanged. Otherwise the
// collected failures are returned as ValidationErrors ordered by field declaration,
// or nil when every field passed.
func (v *Validator) Validate(ctx context.Context, data map[string]any, fields ...FieldSpec) error {
	states := make([]*Field, len(fields))
	for i, spec := range fields {
		states[i] = &Field{
			Name:     spec.Name,
			Value:    data[spec.Name],
			messages: v.messages,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)

	for i, spec := range fields {
		f := states[i]
		g.Go(func() error {
			for _, rule := range spec.Rules {
				if rule == nil {
					continue
				}
				if err := rule(gctx, f); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var errs ValidationErrors
	for _, f := range states {
		errs = append(errs, f.Errors()...)
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}
