package rulefile

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions other than .json, .yaml and .yml.
	ErrUnsupportedFormat = errors.New("unsupported rule file format")

	// ErrInvalidDocument is returned when a rule file cannot be decoded or has the wrong shape.
	ErrInvalidDocument = errors.New("invalid rule file")

	// ErrReadFile is returned when a rule file cannot be read.
	ErrReadFile = errors.New("failed to read rule file")

	// ErrLoadCancelled is returned when the context is done before loading starts.
	ErrLoadCancelled = errors.New("rule file loading cancelled")

	// ErrUnknownBaseRule is returned when an alias names a rule that is not registered.
	ErrUnknownBaseRule = errors.New("alias of unknown rule")
)
