package cookie

import (
	"fmt"
	"strings"
)

// Field names a cookie attribute a matcher can constrain.
type Field string

// Cookie fields, named as they appear in diagnostics.
const (
	FieldName       Field = "name"
	FieldValue      Field = "value"
	FieldComment    Field = "comment"
	FieldExpiryDate Field = "expiryDate"
	FieldDomain     Field = "domain"
	FieldPath       Field = "path"
	FieldSecured    Field = "secured"
	FieldHttpOnly   Field = "httpOnly"
	FieldVersion    Field = "version"
	FieldMaxAge     Field = "maxAge"
)

// Kind is the Go type family of a field's value.
type Kind int

const (
	// KindUnknown is reported for fields outside the record.
	KindUnknown Kind = iota
	// KindString fields hold a string.
	KindString
	// KindBool fields hold a bool.
	KindBool
	// KindInt fields hold an int.
	KindInt
	// KindTime fields hold a time.Time.
	KindTime
)

// String returns the Go type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindTime:
		return "time.Time"
	default:
		return "unknown"
	}
}

var fieldKinds = map[Field]Kind{
	FieldName:       KindString,
	FieldValue:      KindString,
	FieldComment:    KindString,
	FieldExpiryDate: KindTime,
	FieldDomain:     KindString,
	FieldPath:       KindString,
	FieldSecured:    KindBool,
	FieldHttpOnly:   KindBool,
	FieldVersion:    KindInt,
	FieldMaxAge:     KindInt,
}

// aliases maps normalized spellings to fields.
var aliases = map[string]Field{
	"name":       FieldName,
	"value":      FieldValue,
	"comment":    FieldComment,
	"expirydate": FieldExpiryDate,
	"expiry":     FieldExpiryDate,
	"expires":    FieldExpiryDate,
	"domain":     FieldDomain,
	"path":       FieldPath,
	"secured":    FieldSecured,
	"secure":     FieldSecured,
	"httponly":   FieldHttpOnly,
	"version":    FieldVersion,
	"maxage":     FieldMaxAge,
}

// Kind returns the value kind of the field, or KindUnknown.
func (f Field) Kind() Kind {
	return fieldKinds[f]
}

// String returns the field name.
func (f Field) String() string {
	return string(f)
}

// Fields returns every cookie field in declaration order.
func Fields() []Field {
	return []Field{
		FieldName, FieldValue, FieldComment, FieldExpiryDate,
		FieldDomain, FieldPath, FieldSecured, FieldHttpOnly,
		FieldVersion, FieldMaxAge,
	}
}

// ParseField resolves a field name case-insensitively, ignoring
// '_' and '-' separators, so "max_age", "Max-Age" and "maxAge"
// all resolve to FieldMaxAge.
func ParseField(name string) (Field, error) {
	if f, ok := aliases[normalize(name)]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown cookie field: %q", name)
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "")
	return strings.ReplaceAll(name, "-", "")
}
