package bank

import "digital.vasic.cookiematch/pkg/assertion"

// ExpectationFile is the on-disk layout of an expectation file.
// Files may be YAML or JSON.
type ExpectationFile struct {
	Version      string         `json:"version" yaml:"version"`
	Name         string         `json:"name" yaml:"name"`
	Expectations []Expectation  `json:"expectations" yaml:"expectations"`
	Metadata     map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Expectation lists the assertions one named cookie must meet.
type Expectation struct {
	// Cookie is the name of the cookie the assertions apply to.
	Cookie      string                 `json:"cookie" yaml:"cookie"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Assertions  []assertion.Definition `json:"assertions" yaml:"assertions"`
}
