package dbrule

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/dbvalidate/pkg/datasource"
	"github.com/dmitrymomot/dbvalidate/pkg/validator"
)

// Rule identifiers and their default message templates.
const (
	RuleUnique = "database.unique"
	RuleExists = "database.exists"

	MessageUnique = "The {{ field }} has already been taken"
	MessageExists = "The selected {{ field }} is invalid"
)

// kind holds what differs between unique and exists.
type kind struct {
	name      string
	rule      string
	message   string
	wantFound bool
}

var (
	unique = kind{name: "unique", rule: RuleUnique, message: MessageUnique, wantFound: false}
	exists = kind{name: "exists", rule: RuleExists, message: MessageExists, wantFound: true}
)

// Rules builds database-backed field rules over a data source.
type Rules struct {
	src datasource.Source
}

// New returns a rule factory bound to src.
func New(src datasource.Source) *Rules {
	if src == nil {
		panic("dbrule: nil data source")
	}
	return &Rules{src: src}
}

// Unique fails the field when its value is already present.
// With a Check config it fails when the function returns false.
func Unique[T Value](r *Rules, cfg Config[T]) validator.FieldRule {
	return build(r, cfg, unique)
}

// Exists fails the field when its value is not present.
// With a Check config it fails when the function returns false.
func Exists[T Value](r *Rules, cfg Config[T]) validator.FieldRule {
	return build(r, cfg, exists)
}

// Register makes "unique" and "exists" available through reg. The rule
// argument must be a Config of string, int, int64 or float64.
func Register(reg *validator.Registry, r *Rules) error {
	return errors.Join(
		reg.Register(unique.name, factory(r, unique)),
		reg.Register(exists.name, factory(r, exists)),
	)
}

func factory(r *Rules, k kind) validator.RuleFactory {
	return func(arg any) (validator.FieldRule, error) {
		switch cfg := arg.(type) {
		case Config[string]:
			return buildChecked(r, cfg, k)
		case Config[int]:
			return buildChecked(r, cfg, k)
		case Config[int64]:
			return buildChecked(r, cfg, k)
		case Config[float64]:
			return buildChecked(r, cfg, k)
		default:
			return nil, fmt.Errorf("%w: %s expects a dbrule.Config, got %T", validator.ErrInvalidRuleArgument, k.name, arg)
		}
	}
}

func buildChecked[T Value](r *Rules, cfg Config[T], k kind) (validator.FieldRule, error) {
	if cfg.variant == 0 {
		return nil, fmt.Errorf("%w: %s got an empty dbrule.Config", validator.ErrInvalidRuleArgument, k.name)
	}
	return build(r, cfg, k), nil
}

func build[T Value](r *Rules, cfg Config[T], k kind) validator.FieldRule {
	if cfg.variant == 0 {
		panic("dbrule: empty Config, build it with Check or Query")
	}

	return func(ctx context.Context, f *validator.Field) error {
		// A field that already failed is not worth a round trip.
		if !f.IsValid() || f.Value == nil {
			return nil
		}

		value, ok := coerce[T](f.Value)
		if !ok {
			return fmt.Errorf("%w: field %q holds %T", ErrValueType, f.Name, f.Value)
		}

		passed, err := resolve(ctx, r.src, cfg, value, f, k)
		if err != nil {
			return err
		}
		if !passed {
			f.Report(k.message, k.rule)
		}
		return nil
	}
}

func resolve[T Value](ctx context.Context, src datasource.Source, cfg Config[T], value T, f *validator.Field, k kind) (bool, error) {
	if cfg.variant == variantCheck {
		return cfg.check(ctx, src, value, f)
	}

	found, err := checkExistence(ctx, src, cfg.options, value, f)
	if err != nil {
		return false, err
	}
	return found == k.wantFound, nil
}
