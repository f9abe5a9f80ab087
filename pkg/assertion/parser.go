package assertion

import (
	"fmt"
	"strings"
)

// ParseAssertionString parses a compact assertion of the form
// "field:type[:value]". Everything after the second colon is the
// value, so values may contain colons.
//
// Examples:
//
//	"domain:equals:example.com"         -> equals "example.com"
//	"value:not_empty"                   -> not_empty, no value
//	"expiryDate:after:2030-01-01T00:00:00Z"
func ParseAssertionString(s string) (Definition, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Definition{}, fmt.Errorf(
			"invalid assertion %q: want field:type[:value]", s,
		)
	}

	def := Definition{
		Field: strings.TrimSpace(parts[0]),
		Type:  strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		def.Value = parts[2]
	}
	return def, nil
}
