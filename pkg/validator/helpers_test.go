package validator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

const testKey = "key"

// check applies ref to {key: v} and returns the violation, if any.
func check(t *testing.T, ref validator.Ref, v any) *validator.Entry {
	t.Helper()
	entry, err := validator.New().Test(map[string]any{testKey: v}, ref, testKey)
	require.NoError(t, err)
	return entry
}

func passes(t *testing.T, ref validator.Ref, v any) bool {
	t.Helper()
	return check(t, ref, v) == nil
}
