package predicate

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type exprPredicate[T any] struct {
	source  string
	program *vm.Program
}

// Expr compiles an expr-lang expression into a predicate. The
// field value is bound to v and the expression must yield a
// bool, e.g. `len(v) >= 16` or `v > 0 && v <= 86400`.
func Expr[T any](source string) (Predicate[T], error) {
	var zero T
	program, err := expr.Compile(
		source,
		expr.Env(map[string]any{"v": zero}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compiling expression %q: %w", source, err)
	}
	return exprPredicate[T]{source: source, program: program}, nil
}

// Test runs the program. A runtime error counts as a failed test.
func (p exprPredicate[T]) Test(actual T) bool {
	out, err := expr.Run(p.program, map[string]any{"v": actual})
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

func (p exprPredicate[T]) Describe() string {
	return "satisfies `" + p.source + "`"
}
