package predicate

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

// EqualTo holds when the actual value equals expected.
func EqualTo[T comparable](expected T) Predicate[T] {
	return Satisfies(
		"is "+Format(expected),
		func(actual T) bool { return actual == expected },
	)
}

// OneOf holds when the actual value equals any of the given
// values. It is a membership test, not a disjunction of
// predicates.
func OneOf[T comparable](values ...T) Predicate[T] {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Format(v)
	}
	return Satisfies(
		fmt.Sprintf("is one of [%s]", strings.Join(parts, ", ")),
		func(actual T) bool { return slices.Contains(values, actual) },
	)
}

// SameInstant holds when the actual time is the same instant as
// expected, regardless of location.
func SameInstant(expected time.Time) Predicate[time.Time] {
	return Satisfies(
		"is "+Format(expected),
		func(actual time.Time) bool { return actual.Equal(expected) },
	)
}

// Contains holds when the actual string contains substr.
func Contains(substr string) Predicate[string] {
	return Satisfies(
		"contains "+Format(substr),
		func(actual string) bool { return strings.Contains(actual, substr) },
	)
}

// HasPrefix holds when the actual string starts with prefix.
func HasPrefix(prefix string) Predicate[string] {
	return Satisfies(
		"starts with "+Format(prefix),
		func(actual string) bool { return strings.HasPrefix(actual, prefix) },
	)
}

// HasSuffix holds when the actual string ends with suffix.
func HasSuffix(suffix string) Predicate[string] {
	return Satisfies(
		"ends with "+Format(suffix),
		func(actual string) bool { return strings.HasSuffix(actual, suffix) },
	)
}

// EqualFold holds when the actual string equals expected under
// Unicode case folding.
func EqualFold(expected string) Predicate[string] {
	return Satisfies(
		"equals ignoring case "+Format(expected),
		func(actual string) bool { return strings.EqualFold(actual, expected) },
	)
}

// Matches holds when re matches the actual string.
func Matches(re *regexp.Regexp) Predicate[string] {
	return Satisfies(
		"matches /"+re.String()+"/",
		re.MatchString,
	)
}

// NotEmpty holds for strings with non-whitespace content.
func NotEmpty() Predicate[string] {
	return Satisfies(
		"is not empty",
		func(actual string) bool { return strings.TrimSpace(actual) != "" },
	)
}

// GreaterThan holds when actual > bound.
func GreaterThan[T cmp.Ordered](bound T) Predicate[T] {
	return Satisfies(
		"> "+Format(bound),
		func(actual T) bool { return actual > bound },
	)
}

// AtLeast holds when actual >= bound.
func AtLeast[T cmp.Ordered](bound T) Predicate[T] {
	return Satisfies(
		">= "+Format(bound),
		func(actual T) bool { return actual >= bound },
	)
}

// LessThan holds when actual < bound.
func LessThan[T cmp.Ordered](bound T) Predicate[T] {
	return Satisfies(
		"< "+Format(bound),
		func(actual T) bool { return actual < bound },
	)
}

// AtMost holds when actual <= bound.
func AtMost[T cmp.Ordered](bound T) Predicate[T] {
	return Satisfies(
		"<= "+Format(bound),
		func(actual T) bool { return actual <= bound },
	)
}

// Between holds when lo <= actual <= hi.
func Between[T cmp.Ordered](lo, hi T) Predicate[T] {
	return Satisfies(
		fmt.Sprintf("is between %s and %s", Format(lo), Format(hi)),
		func(actual T) bool { return actual >= lo && actual <= hi },
	)
}

// Before holds when the actual time is strictly before t.
func Before(t time.Time) Predicate[time.Time] {
	return Satisfies(
		"is before "+t.Format(time.RFC3339),
		func(actual time.Time) bool { return actual.Before(t) },
	)
}

// After holds when the actual time is strictly after t.
func After(t time.Time) Predicate[time.Time] {
	return Satisfies(
		"is after "+t.Format(time.RFC3339),
		func(actual time.Time) bool { return actual.After(t) },
	)
}

// Within holds when the actual time is no further than d from t
// in either direction.
func Within(t time.Time, d time.Duration) Predicate[time.Time] {
	return Satisfies(
		fmt.Sprintf("is within %s of %s", d, t.Format(time.RFC3339)),
		func(actual time.Time) bool {
			diff := actual.Sub(t)
			if diff < 0 {
				diff = -diff
			}
			return diff <= d
		},
	)
}
