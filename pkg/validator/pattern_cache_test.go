package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternCache(t *testing.T) {
	t.Parallel()

	t.Run("reuses compiled patterns", func(t *testing.T) {
		c := newPatternCache(2)
		first, err := c.compile(`^a+$`)
		require.NoError(t, err)
		second, err := c.compile(`^a+$`)
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, 1, c.size())
	})

	t.Run("evicts the least recently used pattern", func(t *testing.T) {
		c := newPatternCache(2)
		a, _ := c.compile("a")
		_, _ = c.compile("b")
		_, _ = c.compile("a")
		_, _ = c.compile("c")
		assert.Equal(t, 2, c.size())

		again, err := c.compile("a")
		require.NoError(t, err)
		assert.Same(t, a, again)

		_, hasB := c.items["b"]
		assert.False(t, hasB)
	})

	t.Run("invalid patterns are not cached", func(t *testing.T) {
		c := newPatternCache(2)
		_, err := c.compile(`(`)
		require.Error(t, err)
		assert.Equal(t, 0, c.size())
	})

	t.Run("non-positive capacity uses the default", func(t *testing.T) {
		c := newPatternCache(0)
		assert.Equal(t, defaultPatternCacheSize, c.capacity)
	})
}

func TestEnginePatternCache(t *testing.T) {
	t.Parallel()

	e := New(WithPatternCacheSize(1))
	rs := Ruleset{}.
		Add("a", Override("match", Params{"pattern": `^a$`})).
		Add("b", Override("match", Params{"pattern": `^b$`}))

	res, err := e.Validate(map[string]any{"a": "a", "b": "x"}, rs)
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, 1, e.patterns.size())
}
