package validator_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

func bookRule(pages validator.Ref) validator.Definition {
	return validator.Definition{
		Message:   "invalid book's properties",
		Recurrent: true,
		Ruleset: validator.Ruleset{}.
			Add("author", validator.Named("required"), validator.Override("maxLength", validator.Params{"maxLength": 30})).
			Add("pages", pages),
	}
}

func TestEngine_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid record yields no entries", func(t *testing.T) {
		e := validator.New()
		res, err := e.Validate(map[string]any{"key": "value"}, validator.Ruleset{}.Add("key", validator.Named("required")))
		require.NoError(t, err)
		assert.Empty(t, res)
		assert.True(t, res.Valid())
		assert.NoError(t, res.Err())
	})

	t.Run("single item sequence", func(t *testing.T) {
		res, err := validator.New().Validate(map[string]any{"key": "value"}, validator.Ruleset{}.Add("key", validator.Sequence(validator.Named("required"))))
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("every reference of a field is evaluated", func(t *testing.T) {
		rs := validator.Ruleset{}.Add("key", validator.Named("required"), validator.Named("maxLength"))
		res, err := validator.New().Validate(map[string]any{"key": "value"}, rs)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "key must be at most 1 characters long", res[0].Message)

		rs = validator.Ruleset{}.Add("key", validator.Named("required"), validator.Override("maxLength", validator.Params{"maxLength": 30}))
		res, err = validator.New().Validate(map[string]any{"key": "value"}, rs)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("entries follow declaration then reference order", func(t *testing.T) {
		rs := validator.Ruleset{}.
			Add("b", validator.Named("deny"), validator.Named("integer")).
			Add("a", validator.Named("required"))
		res, err := validator.New().Validate(map[string]any{"b": "x"}, rs)
		require.NoError(t, err)
		assert.Equal(t, []string{"b is forbidden", "b must be an integer", "a is required"}, res.Messages())
		assert.Equal(t, []string{"b", "a"}, res.Fields())
	})

	t.Run("absent optional fields are skipped", func(t *testing.T) {
		e := validator.New()
		for _, name := range validator.Builtins() {
			if name == validator.RequiredRule {
				continue
			}
			res, err := e.Validate(map[string]any{}, validator.Ruleset{}.Add("k", validator.Named(name)))
			require.NoError(t, err, name)
			assert.Empty(t, res, name)

			res, err = e.Validate(map[string]any{"k": nil}, validator.Ruleset{}.Add("k", validator.Named(name)))
			require.NoError(t, err, name)
			assert.Empty(t, res, name)
		}
	})

	t.Run("validation is idempotent", func(t *testing.T) {
		e := validator.New()
		record := map[string]any{"email": "bad", "age": "x", "tags": []any{1, "a"}}
		rs := validator.Ruleset{}.
			Add("email", validator.Named("required"), validator.Named("email")).
			Add("age", validator.Named("integer")).
			Add("tags", validator.Override("list", validator.Params{"ruleset": "integer"})).
			Add("name", validator.Named("required"))

		first, err := e.Validate(record, rs)
		require.NoError(t, err)
		second, err := e.Validate(record, rs)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Len(t, first, 4)
	})

	t.Run("record is not modified", func(t *testing.T) {
		record := map[string]any{"tags": []any{"1", "2"}}
		rs := validator.Ruleset{}.Add("tags", validator.Override("list", validator.Params{"ruleset": "integer"}))
		_, err := validator.New().Validate(record, rs)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"tags": []any{"1", "2"}}, record)
	})

	t.Run("message override", func(t *testing.T) {
		rs := validator.Ruleset{}.Add("email", validator.Named("required").WithMessage("%s needed"))
		res, err := validator.New().Validate(map[string]any{}, rs)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "email needed", res[0].Message)
	})

	t.Run("records of other map types", func(t *testing.T) {
		rs := validator.Ruleset{}.Add("name", validator.Named("required"), validator.Named("maxLength"))

		res, err := validator.New().Validate(map[string]string{"name": "ab"}, rs)
		require.NoError(t, err)
		assert.Len(t, res, 1)

		type key string
		res, err = validator.New().Validate(map[key]int{"name": 1}, rs)
		require.NoError(t, err)
		assert.Len(t, res, 1)

		res, err = validator.New().Validate("not a record", rs)
		require.NoError(t, err)
		assert.Equal(t, []string{"name is required"}, res.Messages())
	})
}

func TestEngine_RecurrentRules(t *testing.T) {
	t.Parallel()

	e := validator.New()
	e.Register("book", bookRule(validator.Named("integer")))
	rs := validator.Ruleset{}.Add("book", validator.Named("book"))

	t.Run("valid nested record", func(t *testing.T) {
		res, err := e.Validate(map[string]any{"book": map[string]any{"author": "Steven King"}}, rs)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("one nested violation", func(t *testing.T) {
		res, err := e.Validate(map[string]any{"book": map[string]any{"author": "Steven King, Steven King, Steven King, Steven King"}}, rs)
		require.NoError(t, err)
		assert.Len(t, res, 1)

		res, err = e.Validate(map[string]any{"book": map[string]any{"pages": 30}}, rs)
		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("nested violations aggregate under one compound entry", func(t *testing.T) {
		res, err := e.Validate(map[string]any{"book": map[string]any{"pages": -123.3}}, rs)
		require.NoError(t, err)
		require.Len(t, res, 1)

		entry := res[0]
		assert.True(t, entry.IsCompound())
		assert.Equal(t, "invalid book's properties", entry.Message)
		assert.Equal(t, "book", entry.Field)
		require.Len(t, entry.Nested, 2)
		assert.Equal(t, "author is required", entry.Nested[0].Message)
		assert.Equal(t, "pages must be an integer", entry.Nested[1].Message)
	})

	t.Run("absent nested record is skipped", func(t *testing.T) {
		res, err := e.Validate(map[string]any{}, rs)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("compound list inside a recurrent rule", func(t *testing.T) {
		e := validator.New()
		e.Register("book", bookRule(validator.Override("list", validator.Params{"ruleset": "integer"})))

		res, err := e.ValidateNamed(map[string]any{"pages": []any{12, 123.6}, "author": "Steven"}, "book")
		require.NoError(t, err)
		assert.Len(t, res, 1)

		res, err = e.ValidateNamed(map[string]any{"pages": []any{12}, "author": "Steven"}, "book")
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestEngine_ValidateNamed(t *testing.T) {
	t.Parallel()

	e := validator.New()
	e.Register("book", bookRule(validator.Named("integer")))

	t.Run("validates the root record", func(t *testing.T) {
		res, err := e.ValidateNamed(map[string]any{"author": "Steven King"}, "book")
		require.NoError(t, err)
		assert.Empty(t, res)

		res, err = e.ValidateNamed(map[string]any{"pages": -123.2}, "book")
		require.NoError(t, err)
		assert.Len(t, res, 2)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := e.ValidateNamed(map[string]any{"asdf": 5}, "missingRule")
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrMissingRuleset)
		assert.ErrorIs(t, err, validator.ErrUnknownRule)
	})

	t.Run("simple rule name does not fail", func(t *testing.T) {
		res, err := e.ValidateNamed(map[string]any{"asdf": 5}, "required")
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("list over a scalar does not fail", func(t *testing.T) {
		rs := validator.Ruleset{}.Add("asdf", validator.Sequence(validator.Override("list", validator.Params{"ruleset": "integer"})))
		_, err := e.Validate(map[string]any{"asdf": 5}, rs)
		assert.NoError(t, err)
	})
}

func TestEngine_StructuralErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown rule", func(t *testing.T) {
		_, err := validator.New().Validate(map[string]any{"a": 1}, validator.Ruleset{}.Add("a", validator.Named("nope")))
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrUnknownRule)
		assert.False(t, validator.IsValidationError(err))
	})

	t.Run("incomplete simple rule", func(t *testing.T) {
		e := validator.New()
		e.Register("broken", validator.Definition{Message: "%s is broken"})
		_, err := e.Validate(map[string]any{"a": 1}, validator.Ruleset{}.Add("a", validator.Named("broken")))
		assert.ErrorIs(t, err, validator.ErrIncompleteRule)
	})

	t.Run("incomplete recurrent rule", func(t *testing.T) {
		e := validator.New()
		e.Register("broken", validator.Definition{Message: "invalid %s", Recurrent: true})
		_, err := e.Validate(map[string]any{"a": map[string]any{}}, validator.Ruleset{}.Add("a", validator.Named("broken")))
		assert.ErrorIs(t, err, validator.ErrIncompleteRule)
	})

	t.Run("reference without a rule name", func(t *testing.T) {
		_, err := validator.New().Validate(map[string]any{"a": 1}, validator.Ruleset{}.Add("a", validator.Ref{}))
		assert.ErrorIs(t, err, validator.ErrInvalidRef)
	})

	t.Run("predicate errors propagate", func(t *testing.T) {
		boom := errors.New("boom")
		e := validator.New()
		e.Register("explode", validator.Definition{
			Message: "%s",
			Test: func(*validator.Context, any, validator.Ref) (bool, error) {
				return false, boom
			},
		})
		_, err := e.Validate(map[string]any{"a": 1}, validator.Ruleset{}.Add("a", validator.Named("explode")))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("test rejects sequences", func(t *testing.T) {
		_, err := validator.New().Test(map[string]any{}, validator.Sequence(validator.Named("required")), "a")
		assert.ErrorIs(t, err, validator.ErrInvalidRef)
	})
}

func nested(depth int) map[string]any {
	record := map[string]any{}
	for range depth {
		record = map[string]any{"child": record}
	}
	return record
}

func TestEngine_MaxDepth(t *testing.T) {
	t.Parallel()

	node := validator.Definition{
		Message:   "invalid %s",
		Recurrent: true,
		Ruleset:   validator.Ruleset{}.Add("child", validator.Named("node")),
	}
	rs := validator.Ruleset{}.Add("child", validator.Named("node"))

	t.Run("cyclic record fails instead of overflowing", func(t *testing.T) {
		e := validator.New()
		e.Register("node", node)

		cyclic := map[string]any{}
		cyclic["child"] = cyclic
		_, err := e.Validate(cyclic, rs)
		assert.ErrorIs(t, err, validator.ErrMaxDepthExceeded)
	})

	t.Run("configured depth", func(t *testing.T) {
		e := validator.New(validator.WithMaxDepth(3))
		e.Register("node", node)

		_, err := e.Validate(nested(3), rs)
		assert.NoError(t, err)

		_, err = e.Validate(nested(5), rs)
		assert.ErrorIs(t, err, validator.ErrMaxDepthExceeded)
	})

	t.Run("non-positive depth disables the guard", func(t *testing.T) {
		e := validator.New(validator.WithMaxDepth(0))
		e.Register("node", node)

		res, err := e.Validate(nested(validator.DefaultMaxDepth+50), rs)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("list elements count as a level", func(t *testing.T) {
		e := validator.New(validator.WithMaxDepth(1))
		e.Register("items", validator.Definition{
			Message:   "invalid %s",
			Recurrent: true,
			Ruleset:   validator.Ruleset{}.Add("values", validator.Override("list", validator.Params{"ruleset": "integer"})),
		})
		_, err := e.Validate(
			map[string]any{"items": map[string]any{"values": []any{1}}},
			validator.Ruleset{}.Add("items", validator.Named("items")),
		)
		assert.ErrorIs(t, err, validator.ErrMaxDepthExceeded)
	})
}

func TestEngine_Concurrency(t *testing.T) {
	t.Parallel()

	e := validator.New()
	rs := validator.Ruleset{}.Add("name", validator.Named("required"), validator.Named("custom"))
	e.Register("custom", validator.Definition{
		Message: "%s is not custom",
		Test:    validator.Check(func(v any) bool { return v == "custom" }),
	})

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%5 == 0 {
				e.Register("custom", validator.Definition{
					Message: "%s is not custom",
					Test:    validator.Check(func(v any) bool { return v == "custom" }),
				})
				return
			}
			res, err := e.Validate(map[string]any{"name": "other"}, rs)
			assert.NoError(t, err)
			assert.Len(t, res, 1)
		}(i)
	}
	wg.Wait()
}
