package coerce

import "errors"

var (
	// ErrUnknownParser is returned when a plan names an unregistered parser.
	ErrUnknownParser = errors.New("unknown parser")

	// ErrIncompleteParser is returned when registering a parser without a name or function.
	ErrIncompleteParser = errors.New("incomplete parser: a parser needs a name and a function")
)
