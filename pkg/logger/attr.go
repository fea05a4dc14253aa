package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Rule records a rule name under the key "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// Field records a record field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Ruleset records a ruleset name under the key "ruleset".
// If name is empty, it returns an empty Attr.
func Ruleset(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("ruleset", name)
}

// Violations records the number of violations under the key "violations".
func Violations(n int) slog.Attr {
	return slog.Int("violations", n)
}

// Depth records a nesting depth under the key "depth".
func Depth(d int) slog.Attr {
	return slog.Int("depth", d)
}

// Path records a file path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}
