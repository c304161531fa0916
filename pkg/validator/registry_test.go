package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dbvalidate/pkg/validator"
)

func minLenFactory(arg any) (validator.FieldRule, error) {
	n, ok := arg.(int)
	if !ok {
		return nil, validator.ErrInvalidRuleArgument
	}
	return validator.MinLen(n), nil
}

func TestRegistry(t *testing.T) {
	t.Run("builds a registered rule", func(t *testing.T) {
		reg := validator.NewRegistry()
		require.NoError(t, reg.Register("min", minLenFactory))

		rule, err := reg.Build("min", 5)
		require.NoError(t, err)

		f := validator.NewField("password", "abc")
		require.NoError(t, rule(context.Background(), f))
		assert.True(t, f.Errors().HasRule("password", "validation.min_length"))
	})

	t.Run("unknown name", func(t *testing.T) {
		reg := validator.NewRegistry()
		_, err := reg.Build("unique", nil)
		assert.ErrorIs(t, err, validator.ErrUnknownRule)
	})

	t.Run("duplicate name", func(t *testing.T) {
		reg := validator.NewRegistry()
		require.NoError(t, reg.Register("min", minLenFactory))
		assert.ErrorIs(t, reg.Register("min", minLenFactory), validator.ErrDuplicateRule)
	})

	t.Run("nil factory", func(t *testing.T) {
		reg := validator.NewRegistry()
		assert.ErrorIs(t, reg.Register("min", nil), validator.ErrNilRule)
	})

	t.Run("factory errors are returned", func(t *testing.T) {
		reg := validator.NewRegistry()
		require.NoError(t, reg.Register("min", minLenFactory))

		_, err := reg.Build("min", "five")
		assert.ErrorIs(t, err, validator.ErrInvalidRuleArgument)
		assert.Panics(t, func() { reg.MustBuild("min", "five") })
	})

	t.Run("names are sorted", func(t *testing.T) {
		reg := validator.NewRegistry()
		require.NoError(t, reg.Register("unique", minLenFactory))
		require.NoError(t, reg.Register("exists", minLenFactory))
		require.NoError(t, reg.Register("min", minLenFactory))
		assert.Equal(t, []string{"exists", "min", "unique"}, reg.Names())
	})
}
