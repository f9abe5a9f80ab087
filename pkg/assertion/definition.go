// Package assertion turns declarative cookie assertions, as
// found in expectation files and on the command line, into
// typed matchers. It ships with 13 built-in assertion types and
// supports custom factory registration.
package assertion

// Definition describes a single assertion on one cookie field.
type Definition struct {
	// Field is the cookie field to check (e.g., "domain",
	// "maxAge", "http_only").
	Field string `json:"field" yaml:"field"`

	// Type is the assertion type (e.g., "equals", "prefix",
	// "min").
	Type string `json:"type" yaml:"type"`

	// Value is the expected value for single-value assertions.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Values holds expected values for multi-value assertions
	// (e.g., "one_of").
	Values []any `json:"values,omitempty" yaml:"values,omitempty"`

	// Message replaces the generated expectation text in
	// diagnostics when set.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}
