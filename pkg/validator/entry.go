package validator

import (
	"bytes"
	"errors"
	"strings"

	"github.com/goccy/go-json"
)

// Entry is one violation. A leaf entry only carries a message; a compound
// entry, produced by a recurrent rule (or a list rule in detail mode), wraps
// the nested violations of the sub-record under its own message.
type Entry struct {
	// Message is the rendered message.
	Message string
	// Field is the record key that failed.
	Field string
	// Rule is the name of the rule that failed.
	Rule string
	// Params holds the per-field parameter overrides the rule was called with.
	Params Params
	// Nested holds the sub-record violations of a compound entry.
	Nested Result
}

// IsCompound reports whether e wraps nested violations.
func (e Entry) IsCompound() bool {
	return e.Nested != nil
}

// MarshalJSON encodes a leaf entry as its message and a compound entry as a
// single-key object mapping the message to the nested entries.
func (e Entry) MarshalJSON() ([]byte, error) {
	if !e.IsCompound() {
		return json.Marshal(e.Message)
	}
	var buf bytes.Buffer
	key, err := json.Marshal(e.Message)
	if err != nil {
		return nil, err
	}
	nested, err := json.Marshal(e.Nested)
	if err != nil {
		return nil, err
	}
	buf.WriteByte('{')
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(nested)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the ordered list of violations produced by a validation. An
// empty Result means the record is valid.
type Result []Entry

// MarshalJSON always encodes an array, never null.
func (r Result) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Entry(r))
}

// Error summarizes the violations so a Result can be returned as an error.
func (r Result) Error() string {
	if len(r) == 0 {
		return ErrValidationFailed.Error()
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(r.Messages(), "; ")
}

// Is lets errors.Is(err, ErrValidationFailed) match a Result.
func (r Result) Is(target error) bool {
	return target == ErrValidationFailed
}

// Err returns r as an error, or nil when there are no violations.
func (r Result) Err() error {
	if len(r) == 0 {
		return nil
	}
	return r
}

// Valid reports whether the record passed.
func (r Result) Valid() bool {
	return len(r) == 0
}

// Messages flattens the result into messages, depth first. Nested
// messages follow the message of the entry wrapping them.
func (r Result) Messages() []string {
	var out []string
	for _, e := range r {
		out = append(out, e.Message)
		out = append(out, e.Nested.Messages()...)
	}
	return out
}

// Has reports whether a top-level entry was produced for field.
func (r Result) Has(field string) bool {
	for _, e := range r {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns the top-level entries produced for field, in order.
func (r Result) Get(field string) []Entry {
	var out []Entry
	for _, e := range r {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// Fields lists the fields with violations, in first-seen order.
func (r Result) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, e := range r {
		if !seen[e.Field] {
			fields = append(fields, e.Field)
			seen[e.Field] = true
		}
	}
	return fields
}

// ExtractResult returns the Result wrapped in err, if any.
func ExtractResult(err error) Result {
	if err == nil {
		return nil
	}
	var r Result
	if errors.As(err, &r) {
		return r
	}
	return nil
}

// IsValidationError reports whether err carries a Result.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var r Result
	return errors.As(err, &r)
}
