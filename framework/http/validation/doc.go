// Package validation validates request payloads that carry their own rules.
//
// # Payload shape
//
// Every attribute maps to an object holding the value and a pipe-separated
// rule string:
//
//	{
//	  "name":  {"value": "Alice", "rules": "required|alpha"},
//	  "email": {"value": "alice@example.com", "rules": "required|email"}
//	}
//
// A payload that is empty, or whose entries miss "value" or "rules", or whose
// "rules" is not a string, is rejected as a whole before any rule runs.
//
// # Basic Usage
//
//	payload, err := validation.ParsePayload(body)
//	if err != nil {
//	    payload = validation.NewPayload() // reported as a structural failure
//	}
//
//	engine := validation.NewEngine(validation.NewRuleSet())
//	result := engine.Validate(payload)
//	if result.Failed() {
//	    // result.Message, result.Errors (ordered *ErrorBag), result.StatusCode() == 422
//	}
//
// # Available Rules
//
//   - required: not nil, not a blank string, not an empty collection
//   - alpha: Unicode letters and marks only
//   - number: integers, floats and numeric strings
//   - email: ASCII-only RFC 5322 address, filtered; DNS or [IP] address-literal domain
//
// Rule names are case-insensitive. A name with no registered rule is reported
// on its attribute as "Unknown validation rule '<name>' detected" and the
// remaining rules still run. Custom rules are added with RuleSet.Register.
//
// # Error Bag
//
// Messages keep generation order and serialise grouped by attribute:
//
//	{
//	  "name": ["name field is required", "name must contain only valid alphabets"],
//	  "age":  ["age must be a valid number"]
//	}
package validation
