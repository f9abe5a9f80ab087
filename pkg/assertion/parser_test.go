package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssertionString(t *testing.T) {
	tests := []struct {
		input     string
		wantField string
		wantType  string
		wantVal   any
	}{
		{"domain:equals:example.com", "domain", "equals", "example.com"},
		{"value:not_empty", "value", "not_empty", nil},
		{"maxAge:min:60", "maxAge", "min", "60"},
		{"expiryDate:after:2030-01-01T00:00:00Z", "expiryDate", "after", "2030-01-01T00:00:00Z"},
		{" path : prefix:/app", "path", "prefix", "/app"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			def, err := ParseAssertionString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, def.Field)
			assert.Equal(t, tt.wantType, def.Type)
			assert.Equal(t, tt.wantVal, def.Value)
		})
	}
}

func TestParseAssertionString_Invalid(t *testing.T) {
	for _, input := range []string{"", "domain", ":equals:x", "domain::x"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseAssertionString(input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "field:type")
		})
	}
}

func TestParseAssertionString_RoundTripThroughEngine(t *testing.T) {
	def, err := ParseAssertionString("maxAge:equals:3600")
	require.NoError(t, err)

	m, err := NewEngine().Build([]Definition{def})
	require.NoError(t, err)
	assert.True(t, m.Matches(sessionCookie()))
}
