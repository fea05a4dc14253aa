// Package value implements the loose value semantics shared by the rule
// library and the coercion parsers: how arbitrary decoded values are
// stringified, measured, compared and parsed as integers.
package value

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/goccy/go-json"
)

// IsNil reports whether v is absent: untyped nil or a nil pointer, map,
// slice, interface or func.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// IsList reports whether v is a slice or an array.
func IsList(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// Len returns the length of a string (in UTF-16 code units) or of a list.
// ok is false for every other kind of value.
func Len(v any) (n int, ok bool) {
	if s, isStr := v.(string); isStr {
		return StringLen(s), true
	}
	if !IsList(v) {
		return 0, false
	}
	return reflect.ValueOf(v).Len(), true
}

// StringLen counts UTF-16 code units, so astral characters count twice.
func StringLen(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// Elements returns the items of a list, or the characters of a string.
// ok is false when v has no elements to iterate.
func Elements(v any) (items []any, ok bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case string:
		items = make([]any, 0, len(t))
		for _, r := range t {
			items = append(items, string(r))
		}
		return items, true
	}
	if !IsList(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	items = make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// IsEmpty reports whether v carries no content. Strings, lists and maps are
// empty when they have no elements; every other value (numbers, booleans,
// structs) is considered empty.
func IsEmpty(v any) bool {
	if IsNil(v) {
		return true
	}
	if n, ok := Len(v); ok {
		return n == 0
	}
	if reflect.ValueOf(v).Kind() == reflect.Map {
		return reflect.ValueOf(v).Len() == 0
	}
	return true
}

// Number converts numeric values (any Go integer or float kind, or a
// json.Number) to float64.
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// String renders v the way it would be printed into a message or matched
// against a pattern: numbers in shortest form (Infinity, NaN included),
// lists joined with commas, maps as "[object Object]", nil as "null".
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	}
	if f, ok := Number(v); ok {
		return FormatNumber(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			item := rv.Index(i).Interface()
			if IsNil(item) {
				continue
			}
			parts[i] = String(item)
		}
		return strings.Join(parts, ",")
	case reflect.Map, reflect.Struct:
		return "[object Object]"
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return String(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// FormatNumber formats f in its shortest round-trip form.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// 1e+21 style exponent without zero padding
		if i := strings.IndexByte(s, 'e'); i >= 0 {
			mantissa, exp := s[:i], s[i+1:]
			sign := exp[0]
			exp = strings.TrimLeft(exp[1:], "0")
			if exp == "" {
				exp = "0"
			}
			s = mantissa + "e" + string(sign) + exp
		}
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var leadingInt = regexp.MustCompile(`^[+-]?[0-9]+`)

// ParseInt reads the leading base-10 integer of v's string form, ignoring
// leading whitespace. It returns NaN when no digits are found, so any
// comparison against the result fails.
func ParseInt(v any) float64 {
	s := strings.TrimLeft(String(v), " \t\n\r\v\f\u00a0\ufeff")
	m := leadingInt.FindString(s)
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return math.Trunc(f)
}

// Truthy reports whether v counts as "set" for parameter fallback: nil,
// false, zero, NaN and the empty string are not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if f, ok := Number(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return !IsNil(v)
}

// StrictEqual compares two scalar values without type coercion, except that
// all numeric kinds compare by value. Lists, maps and structs are never
// equal to anything.
func StrictEqual(a, b any) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	if fa, ok := Number(a); ok {
		fb, ok := Number(b)
		return ok && fa == fb
	}
	switch ta := a.(type) {
	case string:
		tb, ok := b.(string)
		return ok && ta == tb
	case bool:
		tb, ok := b.(bool)
		return ok && ta == tb
	}
	return false
}

// Contains reports whether list holds an element strictly equal to v.
func Contains(list any, v any) bool {
	items, ok := Elements(list)
	if !ok {
		return false
	}
	for _, item := range items {
		if StrictEqual(item, v) {
			return true
		}
	}
	return false
}

// ToNumber converts v to a float64 for numeric comparison: numbers as they
// are, numeric strings parsed (the empty string is zero), booleans as 0 or 1.
// Anything else, nil included, is NaN.
func ToNumber(v any) float64 {
	if f, ok := Number(v); ok {
		return f
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		switch s {
		case "Infinity", "+Infinity":
			return math.Inf(1)
		case "-Infinity":
			return math.Inf(-1)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case bool:
		if t {
			return 1
		}
		return 0
	}
	return math.NaN()
}
