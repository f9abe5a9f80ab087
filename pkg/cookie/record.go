package cookie

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"
)

// FieldError reports a field that a loosely typed record does
// not expose, or exposes with the wrong type.
type FieldError struct {
	Field  Field
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("cookie field %q: %s", e.Field, e.Reason)
}

// FromMap builds a cookie from a decoded JSON or YAML record.
// Only the requested fields are extracted; each must be present
// and convertible to the field's kind. Unrequested integer
// fields are left Undefined.
func FromMap(m map[string]any, fields ...Field) (*Cookie, error) {
	c := &Cookie{Version: Undefined, MaxAge: Undefined}

	for _, f := range fields {
		raw, err := lookup(m, f)
		if err != nil {
			return nil, err
		}
		if err := assign(c, f, raw); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// lookup prefers the canonical key. Otherwise exactly one alias
// of the field may be present.
func lookup(m map[string]any, f Field) (any, error) {
	if v, ok := m[string(f)]; ok {
		return v, nil
	}
	var aliases []string
	for k := range m {
		if pf, err := ParseField(k); err == nil && pf == f {
			aliases = append(aliases, k)
		}
	}
	switch len(aliases) {
	case 0:
		return nil, &FieldError{Field: f, Reason: "not present in record"}
	case 1:
		return m[aliases[0]], nil
	}
	sort.Strings(aliases)
	return nil, &FieldError{
		Field:  f,
		Reason: fmt.Sprintf("ambiguous keys %s", strings.Join(aliases, ", ")),
	}
}

func assign(c *Cookie, f Field, raw any) error {
	switch f.Kind() {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return mistyped(f, raw)
		}
		switch f {
		case FieldName:
			c.Name = s
		case FieldValue:
			c.Value = s
		case FieldComment:
			c.Comment = s
		case FieldDomain:
			c.Domain = s
		case FieldPath:
			c.Path = s
		}
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return mistyped(f, raw)
		}
		if f == FieldSecured {
			c.Secured = b
		} else {
			c.HttpOnly = b
		}
	case KindInt:
		n, ok := toInt(raw)
		if !ok {
			return mistyped(f, raw)
		}
		if f == FieldVersion {
			c.Version = n
		} else {
			c.MaxAge = n
		}
	case KindTime:
		t, ok := toTime(raw)
		if !ok {
			return mistyped(f, raw)
		}
		c.ExpiryDate = t
	default:
		return &FieldError{Field: f, Reason: "not a cookie field"}
	}
	return nil
}

func mistyped(f Field, raw any) error {
	return &FieldError{
		Field:  f,
		Reason: fmt.Sprintf("expected %s, got %T", f.Kind(), raw),
	}
}

// toInt accepts integral numbers as decoded by encoding/json
// (float64) and yaml.v3 (int).
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// toTime accepts time.Time, RFC 3339 or HTTP date strings, and
// unix seconds.
func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, http.TimeFormat, time.RFC1123} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	}
	if n, ok := toInt(v); ok {
		return time.Unix(int64(n), 0), true
	}
	return time.Time{}, false
}
