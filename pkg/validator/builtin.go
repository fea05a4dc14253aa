package validator

import "maps"

// builtins returns a fresh copy of the built-in rule library.
func builtins() map[string]Definition {
	all := make(map[string]Definition)
	for _, family := range []map[string]Definition{
		comparableRules(),
		stringRules(),
		numericRules(),
		patternRules(),
		formatRules(),
		choiceRules(),
		collectionRules(),
		uuidRules(),
	} {
		maps.Copy(all, family)
	}
	return all
}

// Builtins lists the names of the built-in rules.
func Builtins() []string {
	return NewRegistry().Names()
}
