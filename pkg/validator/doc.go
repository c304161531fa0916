// Package validator provides a small field-validation pipeline: named input
// values are checked by chains of FieldRule functions, failures are reported
// on the Field and collected into a ValidationErrors slice that satisfies the
// error interface.
//
// # Architecture
//
// Core building blocks:
//   - Field             – one named value, its pass/fail state and Report side channel
//   - FieldRule         – func(ctx, *Field) error; reports failures, returns infrastructure errors
//   - Validator         – runs FieldSpecs, fields concurrently, rules of a field in order
//   - Registry          – named rule factories, the extension point for other packages
//   - ValidationError   – describes a single failure and supports i18n keys
//   - ValidationErrors  – slice type that implements the error interface
//
// A FieldRule separates two kinds of failure. A value that does not satisfy
// the rule is reported with Field.Report and validation continues. A check
// that cannot be performed (for example a database error) is returned as an
// error, cancels the run, and is handed back to the caller unchanged.
//
// # Usage
//
//	err := validator.Validate(ctx, map[string]any{"email": email},
//	    validator.For("email", validator.Required(), validator.Email()),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // iterate over field-level messages or translate them
//	} else if err != nil {
//	    // infrastructure failure
//	}
//
// # Messages
//
// Templates may contain {{ field }}, which is replaced by the field name.
// WithMessages overrides templates per rule identifier. Every ValidationError
// also carries the rule identifier as TranslationKey and the field name in
// TranslationValues for callers that translate messages themselves.
package validator
