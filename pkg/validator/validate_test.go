package validator_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dbvalidate/pkg/validator"
)

func failWith(template, rule string) validator.FieldRule {
	return func(_ context.Context, f *validator.Field) error {
		f.Report(template, rule)
		return nil
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns nil when every field passes", func(t *testing.T) {
		err := validator.Validate(ctx, map[string]any{"email": "user@example.com"},
			validator.For("email", validator.Required(), validator.Email()),
		)
		assert.NoError(t, err)
	})

	t.Run("collects failures in field declaration order", func(t *testing.T) {
		err := validator.Validate(ctx, map[string]any{},
			validator.For("username", failWith("{{ field }} one", "test.one")),
			validator.For("email", failWith("{{ field }} two", "test.two")),
			validator.For("password", failWith("{{ field }} three", "test.three")),
		)

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 3)
		assert.Equal(t, []string{"username", "email", "password"}, verrs.Fields())
		assert.Equal(t, "username one", verrs[0].Message)
		assert.Equal(t, "test.three", verrs[2].Rule)
	})

	t.Run("rules of a field run in order and see earlier failures", func(t *testing.T) {
		var sawInvalid bool
		err := validator.Validate(ctx, map[string]any{"email": ""},
			validator.For("email",
				validator.Required(),
				func(_ context.Context, f *validator.Field) error {
					sawInvalid = !f.IsValid()
					return nil
				},
			),
		)

		require.True(t, validator.IsValidationError(err))
		assert.True(t, sawInvalid)
	})

	t.Run("rule error aborts the run and is returned unchanged", func(t *testing.T) {
		boom := errors.New("database is down")
		err := validator.Validate(ctx, map[string]any{"email": "x"},
			validator.For("username", failWith("{{ field }} bad", "test.bad")),
			validator.For("email", func(context.Context, *validator.Field) error { return boom }),
		)

		assert.Same(t, boom, err)
		assert.False(t, validator.IsValidationError(err))
	})

	t.Run("rule error cancels the context of other fields", func(t *testing.T) {
		boom := errors.New("boom")
		err := validator.Validate(ctx, map[string]any{},
			validator.For("slow", func(ctx context.Context, _ *validator.Field) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(5 * time.Second):
					return nil
				}
			}),
			validator.For("fast", func(context.Context, *validator.Field) error { return boom }),
		)
		assert.Same(t, boom, err)
	})

	t.Run("nil rules are skipped", func(t *testing.T) {
		err := validator.Validate(ctx, map[string]any{"email": "user@example.com"},
			validator.For("email", nil, validator.Email()),
		)
		assert.NoError(t, err)
	})

	t.Run("missing keys are validated as nil", func(t *testing.T) {
		var got any = "sentinel"
		err := validator.Validate(ctx, map[string]any{},
			validator.For("email", func(_ context.Context, f *validator.Field) error {
				got = f.Value
				return nil
			}),
		)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestValidator_Options(t *testing.T) {
	ctx := context.Background()

	t.Run("message overrides apply per rule", func(t *testing.T) {
		v := validator.New(validator.WithMessages(map[string]string{
			"validation.required": "Please fill in {{field}}",
		}))

		err := v.Validate(ctx, map[string]any{},
			validator.For("email", validator.Required()),
		)
		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "Please fill in email", verrs[0].Message)
		assert.Equal(t, "validation.required", verrs[0].TranslationKey)
		assert.Equal(t, map[string]any{"field": "email"}, verrs[0].TranslationValues)
	})

	t.Run("overrides do not leak into the default validator", func(t *testing.T) {
		_ = validator.New(validator.WithMessages(map[string]string{"validation.required": "custom"}))

		err := validator.Validate(ctx, map[string]any{}, validator.For("email", validator.Required()))
		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "The email field is required", verrs[0].Message)
	})

	t.Run("concurrency limit bounds running fields", func(t *testing.T) {
		var running, peak atomic.Int32
		rule := func(context.Context, *validator.Field) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return nil
		}

		specs := make([]validator.FieldSpec, 8)
		for i := range specs {
			specs[i] = validator.For(string(rune('a'+i)), rule)
		}

		v := validator.New(validator.WithConcurrency(2))
		require.NoError(t, v.Validate(ctx, map[string]any{}, specs...))
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})
}

func TestField(t *testing.T) {
	t.Run("starts valid", func(t *testing.T) {
		f := validator.NewField("email", "user@example.com")
		assert.True(t, f.IsValid())
		assert.Nil(t, f.Errors())
	})

	t.Run("report renders the field name", func(t *testing.T) {
		f := validator.NewField("email", "user@example.com")
		f.Report("The {{ field }} has already been taken", "database.unique")

		assert.False(t, f.IsValid())
		errs := f.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, validator.ValidationError{
			Field:             "email",
			Rule:              "database.unique",
			Message:           "The email has already been taken",
			TranslationKey:    "database.unique",
			TranslationValues: map[string]any{"field": "email"},
		}, errs[0])
	})

	t.Run("errors returns a copy", func(t *testing.T) {
		f := validator.NewField("email", nil)
		f.Report("bad", "test.bad")

		errs := f.Errors()
		errs[0].Message = "changed"
		assert.Equal(t, "bad", f.Errors()[0].Message)
	})
}
