package cookie

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// FromHTTP converts a net/http cookie. A zero http MaxAge means
// the attribute was absent and maps to Undefined; a negative one
// means "Max-Age=0" and maps to 0. Returns nil for a nil cookie.
func FromHTTP(c *http.Cookie) *Cookie {
	if c == nil {
		return nil
	}

	out := &Cookie{
		Name:       c.Name,
		Value:      c.Value,
		ExpiryDate: c.Expires,
		Domain:     c.Domain,
		Path:       c.Path,
		Secured:    c.Secure,
		HttpOnly:   c.HttpOnly,
		Version:    Undefined,
		MaxAge:     Undefined,
	}

	switch {
	case c.MaxAge > 0:
		out.MaxAge = c.MaxAge
	case c.MaxAge < 0:
		out.MaxAge = 0
	}

	applyLegacyAttributes(out, c.Unparsed)
	return out
}

// ParseSetCookie parses a Set-Cookie header value. The RFC 2109
// Comment and Version attributes, which net/http leaves
// unparsed, are carried over.
func ParseSetCookie(header string) (*Cookie, error) {
	c, err := http.ParseSetCookie(header)
	if err != nil {
		return nil, fmt.Errorf("parse Set-Cookie header: %w", err)
	}
	return FromHTTP(c), nil
}

func applyLegacyAttributes(c *Cookie, attrs []string) {
	for _, attr := range attrs {
		key, val, _ := strings.Cut(attr, "=")
		val = strings.Trim(strings.TrimSpace(val), `"`)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "comment":
			c.Comment = val
		case "version":
			if v, err := strconv.Atoi(val); err == nil {
				c.Version = v
			}
		}
	}
}
