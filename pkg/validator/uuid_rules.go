package validator

import (
	"github.com/google/uuid"
)

func uuidRules() map[string]Definition {
	return map[string]Definition{
		"uuid": {
			Message: "%s must be a valid UUID",
			Test: Check(func(v any) bool {
				s, ok := v.(string)
				// Only the canonical 36-character form; uuid.Parse also
				// accepts urn and braced forms.
				if !ok || len(s) != 36 {
					return false
				}
				if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
					return false
				}
				_, err := uuid.Parse(s)
				return err == nil
			}),
		},
	}
}
