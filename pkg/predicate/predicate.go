// Package predicate provides typed, self-describing tests over a
// single cookie field value. Predicates are immutable and safe
// for concurrent use.
package predicate

import (
	"fmt"
	"time"
)

// Predicate tests one field value. Describe returns the
// expectation in the form it reads after a field name, e.g.
// `is "foo"` or `>= 3`.
type Predicate[T any] interface {
	Test(actual T) bool
	Describe() string
}

type funcPredicate[T any] struct {
	fn   func(T) bool
	desc string
}

func (p funcPredicate[T]) Test(actual T) bool { return p.fn(actual) }

func (p funcPredicate[T]) Describe() string { return p.desc }

// Satisfies wraps a plain function as a Predicate with the given
// description. An empty description reads "satisfies predicate".
func Satisfies[T any](description string, fn func(T) bool) Predicate[T] {
	if description == "" {
		description = "satisfies predicate"
	}
	return funcPredicate[T]{fn: fn, desc: description}
}

// Anything accepts every value.
func Anything[T any]() Predicate[T] {
	return Satisfies("is anything", func(T) bool { return true })
}

// Widen adapts a predicate over any value to a concrete field
// type, so a predicate written for a supertype fits every field.
func Widen[T any](p Predicate[any]) Predicate[T] {
	return funcPredicate[T]{
		fn:   func(actual T) bool { return p.Test(actual) },
		desc: p.Describe(),
	}
}

// Format renders a value the way descriptions quote it: strings
// are double-quoted, times use RFC 3339, everything else %v.
func Format(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%v", v)
}
