package cookie

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap_ExtractsRequestedFields(t *testing.T) {
	m := map[string]any{
		"value":      "sess123",
		"domain":     "example.com",
		"secure":     true,
		"http_only":  false,
		"max-age":    float64(3600),
		"version":    1,
		"expiryDate": "2030-01-02T03:04:05Z",
	}

	c, err := FromMap(m,
		FieldValue, FieldDomain, FieldSecured, FieldHttpOnly,
		FieldMaxAge, FieldVersion, FieldExpiryDate,
	)
	require.NoError(t, err)

	assert.Equal(t, "sess123", c.Value)
	assert.Equal(t, "example.com", c.Domain)
	assert.True(t, c.Secured)
	assert.False(t, c.HttpOnly)
	assert.Equal(t, 3600, c.MaxAge)
	assert.Equal(t, 1, c.Version)
	assert.True(t, c.ExpiryDate.Equal(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestFromMap_UnrequestedIntegersUndefined(t *testing.T) {
	c, err := FromMap(map[string]any{"value": "x"}, FieldValue)
	require.NoError(t, err)
	assert.Equal(t, Undefined, c.MaxAge)
	assert.Equal(t, Undefined, c.Version)
}

func TestFromMap_MissingField(t *testing.T) {
	_, err := FromMap(map[string]any{"value": "x"}, FieldDomain)
	require.Error(t, err)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FieldDomain, fe.Field)
	assert.Contains(t, err.Error(), "not present")
}

func TestFromMap_AmbiguousAliases(t *testing.T) {
	m := map[string]any{"Secure": true, "SECURED": false}

	for range 20 {
		_, err := FromMap(m, FieldSecured)
		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, FieldSecured, fe.Field)
		assert.Equal(t, "ambiguous keys SECURED, Secure", fe.Reason)
	}
}

func TestFromMap_CanonicalKeyWins(t *testing.T) {
	c, err := FromMap(
		map[string]any{"secured": true, "Secure": false},
		FieldSecured,
	)
	require.NoError(t, err)
	assert.True(t, c.Secured)
}

func TestFromMap_Mistyped(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		raw   any
	}{
		{"string field", FieldValue, 42},
		{"bool field", FieldSecured, "yes"},
		{"int field", FieldMaxAge, 1.5},
		{"time field", FieldExpiryDate, "tomorrow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(map[string]any{string(tt.field): tt.raw}, tt.field)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "expected "+tt.field.Kind().String())
		})
	}
}

func TestFromMap_UnknownField(t *testing.T) {
	_, err := FromMap(map[string]any{"sameSite": "lax"}, Field("sameSite"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a cookie field")
}

func TestFromMap_UnixExpiry(t *testing.T) {
	c, err := FromMap(map[string]any{"expires": int64(1700000000)}, FieldExpiryDate)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), c.ExpiryDate.Unix())
}
