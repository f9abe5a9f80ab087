package assertion

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/predicate"
)

var errMissingValue = errors.New("expected value is missing")

// buildEquals compares the field with a value converted to the
// field's kind.
func buildEquals(def Definition, kind cookie.Kind) (any, error) {
	if def.Value == nil {
		return nil, errMissingValue
	}

	switch kind {
	case cookie.KindString:
		s, ok := toString(def.Value)
		if !ok {
			return nil, notA("string", def.Value)
		}
		return predicate.EqualTo(s), nil
	case cookie.KindBool:
		b, ok := toBool(def.Value)
		if !ok {
			return nil, notA("bool", def.Value)
		}
		return predicate.EqualTo(b), nil
	case cookie.KindInt:
		n, ok := toInt(def.Value)
		if !ok {
			return nil, notA("number", def.Value)
		}
		return predicate.EqualTo(n), nil
	case cookie.KindTime:
		t, ok := toTime(def.Value)
		if !ok {
			return nil, notA("time", def.Value)
		}
		return predicate.SameInstant(t), nil
	}
	return nil, unsupportedKind(kind)
}

// buildOneOf accepts Values, a list in Value, or a
// comma-separated string in Value.
func buildOneOf(def Definition, kind cookie.Kind) (any, error) {
	items := listValues(def)
	if len(items) == 0 {
		return nil, errMissingValue
	}

	switch kind {
	case cookie.KindString:
		values := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := toString(item)
			if !ok {
				return nil, notA("string", item)
			}
			values = append(values, strings.TrimSpace(s))
		}
		return predicate.OneOf(values...), nil
	case cookie.KindInt:
		values := make([]int, 0, len(items))
		for _, item := range items {
			n, ok := toInt(item)
			if !ok {
				return nil, notA("number", item)
			}
			values = append(values, n)
		}
		return predicate.OneOf(values...), nil
	}
	return nil, unsupportedKind(kind)
}

// buildContains checks for a substring.
func buildContains(def Definition, kind cookie.Kind) (any, error) {
	return stringArg(def, kind, predicate.Contains)
}

// buildPrefix checks the start of the field.
func buildPrefix(def Definition, kind cookie.Kind) (any, error) {
	return stringArg(def, kind, predicate.HasPrefix)
}

// buildSuffix checks the end of the field.
func buildSuffix(def Definition, kind cookie.Kind) (any, error) {
	return stringArg(def, kind, predicate.HasSuffix)
}

// buildEqualFold compares ignoring case.
func buildEqualFold(def Definition, kind cookie.Kind) (any, error) {
	return stringArg(def, kind, predicate.EqualFold)
}

// buildMatches compiles Value as a regular expression.
func buildMatches(def Definition, kind cookie.Kind) (any, error) {
	return stringArg(def, kind, func(pattern string) predicate.Predicate[string] {
		return predicate.Matches(regexp.MustCompile(pattern))
	}, func(pattern string) error {
		_, err := regexp.Compile(pattern)
		return err
	})
}

// buildNotEmpty requires non-blank content.
func buildNotEmpty(_ Definition, kind cookie.Kind) (any, error) {
	if kind != cookie.KindString {
		return nil, unsupportedKind(kind)
	}
	return predicate.NotEmpty(), nil
}

// buildMin sets an inclusive lower bound on an integer field.
func buildMin(def Definition, kind cookie.Kind) (any, error) {
	return intArg(def, kind, predicate.AtLeast[int])
}

// buildMax sets an inclusive upper bound on an integer field.
func buildMax(def Definition, kind cookie.Kind) (any, error) {
	return intArg(def, kind, predicate.AtMost[int])
}

// buildBefore requires a time strictly before Value.
func buildBefore(def Definition, kind cookie.Kind) (any, error) {
	return timeArg(def, kind, predicate.Before)
}

// buildAfter requires a time strictly after Value.
func buildAfter(def Definition, kind cookie.Kind) (any, error) {
	return timeArg(def, kind, predicate.After)
}

// buildExpr compiles Value as an expr-lang expression over v.
func buildExpr(def Definition, kind cookie.Kind) (any, error) {
	source, ok := def.Value.(string)
	if !ok || source == "" {
		return nil, errMissingValue
	}

	switch kind {
	case cookie.KindString:
		return predicate.Expr[string](source)
	case cookie.KindBool:
		return predicate.Expr[bool](source)
	case cookie.KindInt:
		return predicate.Expr[int](source)
	case cookie.KindTime:
		return predicate.Expr[time.Time](source)
	}
	return nil, unsupportedKind(kind)
}

// --- helpers ---

func stringArg(
	def Definition,
	kind cookie.Kind,
	build func(string) predicate.Predicate[string],
	validators ...func(string) error,
) (any, error) {
	if kind != cookie.KindString {
		return nil, unsupportedKind(kind)
	}
	s, ok := toString(def.Value)
	if !ok {
		return nil, notA("string", def.Value)
	}
	for _, validate := range validators {
		if err := validate(s); err != nil {
			return nil, err
		}
	}
	return build(s), nil
}

func intArg(
	def Definition,
	kind cookie.Kind,
	build func(int) predicate.Predicate[int],
) (any, error) {
	if kind != cookie.KindInt {
		return nil, unsupportedKind(kind)
	}
	n, ok := toInt(def.Value)
	if !ok {
		return nil, notA("number", def.Value)
	}
	return build(n), nil
}

func timeArg(
	def Definition,
	kind cookie.Kind,
	build func(time.Time) predicate.Predicate[time.Time],
) (any, error) {
	if kind != cookie.KindTime {
		return nil, unsupportedKind(kind)
	}
	t, ok := toTime(def.Value)
	if !ok {
		return nil, notA("time", def.Value)
	}
	return build(t), nil
}

func listValues(def Definition) []any {
	if len(def.Values) > 0 {
		return def.Values
	}
	switch v := def.Value.(type) {
	case []any:
		return v
	case string:
		parts := strings.Split(v, ",")
		items := make([]any, len(parts))
		for i, p := range parts {
			items[i] = p
		}
		return items
	}
	return nil
}

func unsupportedKind(kind cookie.Kind) error {
	return fmt.Errorf("not applicable to %s fields", kind)
}

func notA(want string, got any) error {
	return fmt.Errorf("expected value %v is not a %s", got, want)
}

// toString accepts strings only; YAML scalars that look like
// other types must be quoted.
func toString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// toBool converts bools and their string spellings.
func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	}
	return false, false
}

// toInt converts an any value to int. Floats must be integral.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		return parsed, err == nil
	}
	return 0, false
}

// toTime converts time.Time, RFC 3339 or HTTP date strings.
func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, http.TimeFormat} {
			if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}
