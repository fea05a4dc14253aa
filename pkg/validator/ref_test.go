package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func TestParseRef(t *testing.T) {
	t.Parallel()

	t.Run("bare name", func(t *testing.T) {
		ref, err := validator.ParseRef("required")
		require.NoError(t, err)
		assert.Equal(t, "required", ref.Rule())
		assert.False(t, ref.IsSequence())
		assert.Len(t, ref.Refs(), 1)
	})

	t.Run("override object", func(t *testing.T) {
		ref, err := validator.ParseRef(map[string]any{"rule": "maxLength", "maxLength": 30, "message": "%s too long"})
		require.NoError(t, err)
		assert.Equal(t, "maxLength", ref.Rule())
		assert.Equal(t, "%s too long", ref.Message())
		assert.Equal(t, validator.Params{"maxLength": 30}, ref.Params())
	})

	t.Run("sequence", func(t *testing.T) {
		ref, err := validator.ParseRef([]any{"required", map[string]any{"rule": "maxLength", "maxLength": 30}})
		require.NoError(t, err)
		require.True(t, ref.IsSequence())
		refs := ref.Refs()
		require.Len(t, refs, 2)
		assert.Equal(t, "required", refs[0].Rule())
		assert.Equal(t, "maxLength", refs[1].Rule())
	})

	t.Run("string slice", func(t *testing.T) {
		ref, err := validator.ParseRef([]string{"required", "email"})
		require.NoError(t, err)
		assert.Len(t, ref.Refs(), 2)
	})

	t.Run("nested sequences are flattened", func(t *testing.T) {
		ref, err := validator.ParseRef([]any{"a", []any{"b", []any{"c"}}})
		require.NoError(t, err)
		var names []string
		for _, r := range ref.Refs() {
			names = append(names, r.Rule())
		}
		assert.Equal(t, []string{"a", "b", "c"}, names)
	})

	t.Run("invalid references", func(t *testing.T) {
		for _, v := range []any{
			"",
			42,
			nil,
			map[string]any{"maxLength": 3},
			map[string]any{"rule": 5},
			map[string]any{"rule": "required", "message": 5},
			[]any{"required", 5},
		} {
			_, err := validator.ParseRef(v)
			assert.ErrorIs(t, err, validator.ErrInvalidRef, "value %#v", v)
		}
	})
}

func TestRefBuilders(t *testing.T) {
	t.Parallel()

	t.Run("override copies params", func(t *testing.T) {
		params := validator.Params{"maxLength": 3}
		ref := validator.Override("maxLength", params)
		params["maxLength"] = 4
		v, ok := ref.Param("maxLength")
		require.True(t, ok)
		assert.Equal(t, 3, v)
	})

	t.Run("with adds a parameter without touching the original", func(t *testing.T) {
		base := validator.Named("lengthBetween")
		ref := base.With("low", 2).With("high", 4)
		assert.Nil(t, base.Params())
		assert.Equal(t, validator.Params{"low": 2, "high": 4}, ref.Params())
	})

	t.Run("nil params count as unset", func(t *testing.T) {
		ref := validator.Override("equals", validator.Params{"to": nil})
		_, ok := ref.Param("to")
		assert.False(t, ok)
	})

	t.Run("sequence ignores message and params", func(t *testing.T) {
		seq := validator.Sequence(validator.Named("a"), validator.Named("b"))
		assert.Equal(t, seq, seq.WithMessage("x").With("k", 1))
		assert.Empty(t, seq.Rule())
		assert.False(t, seq.IsZero())
	})

	t.Run("zero ref", func(t *testing.T) {
		assert.True(t, validator.Ref{}.IsZero())
		assert.False(t, validator.Named("a").IsZero())
	})
}

func TestRuleset(t *testing.T) {
	t.Parallel()

	t.Run("add keeps declaration order", func(t *testing.T) {
		rs := validator.Ruleset{}.
			Add("z", validator.Named("required")).
			Add("a", validator.Named("required"), validator.Named("email"))
		assert.Equal(t, []string{"z", "a"}, rs.Names())

		ref, ok := rs.Get("a")
		require.True(t, ok)
		assert.True(t, ref.IsSequence())

		_, ok = rs.Get("missing")
		assert.False(t, ok)
	})

	t.Run("add does not alias the receiver", func(t *testing.T) {
		base := make(validator.Ruleset, 0, 4).Add("a", validator.Named("required"))
		left := base.Add("b", validator.Named("email"))
		right := base.Add("c", validator.Named("integer"))
		assert.Equal(t, []string{"a", "b"}, left.Names())
		assert.Equal(t, []string{"a", "c"}, right.Names())
	})

	t.Run("parse from map uses sorted keys", func(t *testing.T) {
		rs, err := validator.ParseRuleset(map[string]any{
			"name":  "required",
			"email": []any{"required", "email"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"email", "name"}, rs.Names())

		rs, err = validator.ParseRuleset(map[string]string{"b": "required", "a": "integer"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, rs.Names())
	})

	t.Run("parse errors", func(t *testing.T) {
		_, err := validator.ParseRuleset(map[string]any{"a": 5})
		assert.ErrorIs(t, err, validator.ErrInvalidRuleset)
		assert.ErrorIs(t, err, validator.ErrInvalidRef)

		_, err = validator.ParseRuleset("required")
		assert.ErrorIs(t, err, validator.ErrInvalidRuleset)
	})
}
