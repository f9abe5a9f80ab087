package assertion

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/matcher"
	"digital.vasic.cookiematch/pkg/predicate"
)

// Engine defines the interface for assertion engines.
type Engine interface {
	// Apply ANDs a single assertion into m and returns the
	// resulting matcher. m is not modified.
	Apply(
		m *matcher.CookieMatcher,
		def Definition,
	) (*matcher.CookieMatcher, error)

	// Build composes all assertions, in order, onto a fresh
	// matcher.
	Build(defs []Definition) (*matcher.CookieMatcher, error)

	// Register adds a custom factory for the given assertion
	// type. Returns an error if the type is already registered.
	Register(assertionType string, factory Factory) error
}

// DefaultEngine is the standard Engine implementation. It is
// safe for concurrent use.
type DefaultEngine struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewEngine creates a DefaultEngine with all 13 built-in
// assertion types pre-registered.
func NewEngine() *DefaultEngine {
	e := &DefaultEngine{
		factories: make(map[string]Factory),
	}
	e.registerDefaults()
	return e
}

// registerDefaults registers all 13 built-in factories.
func (e *DefaultEngine) registerDefaults() {
	e.factories["equals"] = buildEquals
	e.factories["one_of"] = buildOneOf
	e.factories["contains"] = buildContains
	e.factories["prefix"] = buildPrefix
	e.factories["suffix"] = buildSuffix
	e.factories["equal_fold"] = buildEqualFold
	e.factories["matches"] = buildMatches
	e.factories["not_empty"] = buildNotEmpty
	e.factories["min"] = buildMin
	e.factories["max"] = buildMax
	e.factories["before"] = buildBefore
	e.factories["after"] = buildAfter
	e.factories["expr"] = buildExpr
}

// Register adds a custom factory for the given assertion type.
// Returns an error if the type is already registered.
func (e *DefaultEngine) Register(
	assertionType string,
	factory Factory,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.factories[assertionType]; exists {
		return fmt.Errorf(
			"assertion type already registered: %s",
			assertionType,
		)
	}

	e.factories[assertionType] = factory
	return nil
}

// HasFactory returns true if the given assertion type has a
// registered factory.
func (e *DefaultEngine) HasFactory(assertionType string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.factories[assertionType]
	return exists
}

// Types returns the registered assertion types, sorted.
func (e *DefaultEngine) Types() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	types := make([]string, 0, len(e.factories))
	for t := range e.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Apply resolves the field and factory for def, builds the
// predicate and checks that its type fits the field before
// ANDing it into m.
func (e *DefaultEngine) Apply(
	m *matcher.CookieMatcher,
	def Definition,
) (*matcher.CookieMatcher, error) {
	field, err := cookie.ParseField(def.Field)
	if err != nil {
		return nil, fmt.Errorf("assertion %s: %w", def.Type, err)
	}

	e.mu.RLock()
	factory, exists := e.factories[def.Type]
	e.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf(
			"unknown assertion type: %s", def.Type,
		)
	}

	p, err := factory(def, field.Kind())
	if err != nil {
		return nil, fmt.Errorf(
			"assertion %s on %s: %w", def.Type, field, err,
		)
	}

	return compose(m, field, p, def)
}

// Build composes all assertions onto a fresh matcher. The first
// invalid assertion aborts the build.
func (e *DefaultEngine) Build(
	defs []Definition,
) (*matcher.CookieMatcher, error) {
	m := matcher.New()
	for i, def := range defs {
		next, err := e.Apply(m, def)
		if err != nil {
			return nil, fmt.Errorf("assertions[%d]: %w", i, err)
		}
		m = next
	}
	return m, nil
}

var (
	stringFields = map[cookie.Field]matcher.Field[string]{
		cookie.FieldName:    matcher.NameField,
		cookie.FieldValue:   matcher.ValueField,
		cookie.FieldComment: matcher.CommentField,
		cookie.FieldDomain:  matcher.DomainField,
		cookie.FieldPath:    matcher.PathField,
	}
	boolFields = map[cookie.Field]matcher.Field[bool]{
		cookie.FieldSecured:  matcher.SecuredField,
		cookie.FieldHttpOnly: matcher.HttpOnlyField,
	}
	intFields = map[cookie.Field]matcher.Field[int]{
		cookie.FieldVersion: matcher.VersionField,
		cookie.FieldMaxAge:  matcher.MaxAgeField,
	}
)

// compose is the runtime counterpart of the generic field
// methods: the predicate's type is checked against the field
// kind instead of by the compiler.
func compose(
	m *matcher.CookieMatcher,
	field cookie.Field,
	p any,
	def Definition,
) (*matcher.CookieMatcher, error) {
	switch field.Kind() {
	case cookie.KindString:
		if sp, ok := p.(predicate.Predicate[string]); ok {
			return matcher.Where(m, stringFields[field], relabel(sp, def.Message)), nil
		}
	case cookie.KindBool:
		if bp, ok := p.(predicate.Predicate[bool]); ok {
			return matcher.Where(m, boolFields[field], relabel(bp, def.Message)), nil
		}
	case cookie.KindInt:
		if ip, ok := p.(predicate.Predicate[int]); ok {
			return matcher.Where(m, intFields[field], relabel(ip, def.Message)), nil
		}
	case cookie.KindTime:
		if tp, ok := p.(predicate.Predicate[time.Time]); ok {
			return matcher.Where(m, matcher.ExpiryDateField, relabel(tp, def.Message)), nil
		}
	}

	return nil, fmt.Errorf(
		"assertion %s produced %T, field %s requires a %s predicate",
		def.Type, p, field, field.Kind(),
	)
}

// relabel replaces a predicate's description with message.
func relabel[T any](
	p predicate.Predicate[T],
	message string,
) predicate.Predicate[T] {
	if message == "" {
		return p
	}
	return predicate.Satisfies(message, p.Test)
}

// Evaluate builds a matcher from defs and matches it against
// subject in one step.
func Evaluate(
	engine Engine,
	defs []Definition,
	subject any,
) (matcher.Report, error) {
	m, err := engine.Build(defs)
	if err != nil {
		return matcher.Report{}, err
	}
	return m.Match(subject)
}
