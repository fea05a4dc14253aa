// Package rulefile loads validation rules, named rulesets and coercion plans
// from JSON or YAML documents.
//
// A rule file has up to three sections:
//
//	rules:
//	  adultAge:
//	    rule: greaterThan
//	    than: 17
//	    message: "%s must be at least 18"
//	  address:
//	    message: "address is incomplete"
//	    ruleset:
//	      street: required
//	      zip: [required, zipcode]
//	rulesets:
//	  signup:
//	    email: [required, email]
//	    age: [required, adultAge]
//	    address: address
//	coerce:
//	  email: [trim, email]
//	  age: integer
//
// Entries under rules either alias a registered rule with new default
// parameters (the rule key) or declare a recurrent rule (the ruleset key).
// Rulesets keep the field order of the document, so violations are reported
// in the order the fields were written.
//
// Basic usage:
//
//	f, err := rulefile.Load(ctx, "rules.yaml")
//	if err != nil {
//		return err
//	}
//	engine := validator.New()
//	if err := f.Register(engine.Registry()); err != nil {
//		return err
//	}
//	rs, err := f.Ruleset("signup")
//	if err != nil {
//		return err
//	}
//	record, err = coerce.Coerce(record, f.Coerce)
//	if err != nil {
//		return err
//	}
//	result, err := engine.Validate(record, rs)
package rulefile
