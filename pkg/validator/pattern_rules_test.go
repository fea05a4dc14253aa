package validator_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func TestMatchRule(t *testing.T) {
	t.Parallel()

	t.Run("default pattern matches anything", func(t *testing.T) {
		for _, v := range []any{"", "abc", 12, true} {
			assert.True(t, passes(t, validator.Named("match"), v), "value %#v", v)
		}
	})

	t.Run("string pattern", func(t *testing.T) {
		ref := validator.Override("match", validator.Params{"pattern": `^[a-z]+$`})
		assert.True(t, passes(t, ref, "abc"))
		assert.False(t, passes(t, ref, "abc1"))

		entry := check(t, ref, "ABC")
		require.NotNil(t, entry)
		assert.Equal(t, "key doesn't match the required pattern", entry.Message)
	})

	t.Run("compiled pattern", func(t *testing.T) {
		ref := validator.Override("match", validator.Params{"pattern": regexp.MustCompile(`^\d+$`)})
		assert.True(t, passes(t, ref, 123))
		assert.False(t, passes(t, ref, "12a"))
	})

	t.Run("invalid pattern is a structural error", func(t *testing.T) {
		ref := validator.Override("match", validator.Params{"pattern": `(`})
		_, err := validator.New().Test(map[string]any{testKey: "x"}, ref, testKey)
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrInvalidRef)
	})

	t.Run("unsupported pattern type", func(t *testing.T) {
		ref := validator.Override("match", validator.Params{"pattern": 42})
		_, err := validator.New().Test(map[string]any{testKey: "x"}, ref, testKey)
		assert.ErrorIs(t, err, validator.ErrInvalidRef)
	})

	t.Run("pattern is rendered in custom messages", func(t *testing.T) {
		ref := validator.Override("match", validator.Params{"pattern": regexp.MustCompile(`^a$`)}).
			WithMessage("%s must match %pattern")
		entry := check(t, ref, "b")
		require.NotNil(t, entry)
		assert.Equal(t, "key must match /^a$/", entry.Message)
	})
}

func TestZipcodeRule(t *testing.T) {
	t.Parallel()
	zipcode := validator.Named("zipcode")

	assert.True(t, passes(t, zipcode, "123-45"))
	for _, v := range []any{"12-345", "123-456", "12345", "abc-de", 12345} {
		assert.False(t, passes(t, zipcode, v), "value %#v", v)
	}

	entry := check(t, zipcode, "1")
	require.NotNil(t, entry)
	assert.Equal(t, "key must be valid zip code format XX-XXX", entry.Message)
}
