package validator

import "errors"

// Structural errors. They abort validation and are returned to the caller;
// field violations never surface as errors, they become Result entries.
var (
	// ErrUnknownRule is returned when a rule name is not registered.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrIncompleteRule is returned when a registered rule lacks a test and
	// message (simple rule) or a nested ruleset (recurrent rule).
	ErrIncompleteRule = errors.New("incomplete validation rule: a rule needs a test and a message, or a nested ruleset")

	// ErrMissingRuleset is returned when a ruleset referenced by name does not exist.
	ErrMissingRuleset = errors.New("missing validation ruleset")

	// ErrInvalidRef is returned when a value cannot be read as a rule reference.
	ErrInvalidRef = errors.New("invalid rule reference")

	// ErrInvalidRuleset is returned when a value cannot be read as a ruleset.
	ErrInvalidRuleset = errors.New("invalid ruleset")

	// ErrMaxDepthExceeded is returned when nested validation goes deeper than
	// the engine's configured maximum.
	ErrMaxDepthExceeded = errors.New("maximum validation depth exceeded")

	// ErrValidationFailed is the generic error reported by an empty Result used as an error.
	ErrValidationFailed = errors.New("validation failed")
)
