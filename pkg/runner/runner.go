// Package runner evaluates bank expectations against a cookie
// jar. It supports sequential and parallel execution with
// fail-fast and lifecycle hooks.
package runner

import (
	"context"
	"fmt"
	"time"

	"digital.vasic.cookiematch/pkg/assertion"
	"digital.vasic.cookiematch/pkg/bank"
	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/jar"
	"digital.vasic.cookiematch/pkg/logging"
	"digital.vasic.cookiematch/pkg/matcher"
)

// Status is the outcome of one expectation.
type Status string

const (
	// StatusPassed means every assertion held.
	StatusPassed Status = "passed"
	// StatusFailed means the cookie was absent or an assertion
	// did not hold.
	StatusFailed Status = "failed"
)

// Outcome records the evaluation of one expectation.
type Outcome struct {
	Cookie      string         `json:"cookie"`
	Description string         `json:"description,omitempty"`
	Status      Status         `json:"status"`
	Report      matcher.Report `json:"report"`
	Duration    time.Duration  `json:"duration"`
}

// Passed reports whether the expectation held.
func (o Outcome) Passed() bool {
	return o.Status == StatusPassed
}

// Runner defines the interface for expectation evaluation.
type Runner interface {
	// Run evaluates expectations in order against j.
	Run(
		ctx context.Context,
		expectations []*bank.Expectation,
		j *jar.Jar,
	) ([]Outcome, error)

	// RunParallel evaluates expectations concurrently with the
	// given concurrency limit, returning outcomes in input
	// order.
	RunParallel(
		ctx context.Context,
		expectations []*bank.Expectation,
		j *jar.Jar,
		maxConcurrency int,
	) ([]Outcome, error)
}

// PreHook is invoked before an expectation is evaluated with the
// cookie found for it, which may be nil.
type PreHook func(
	ctx context.Context,
	exp *bank.Expectation,
	c *cookie.Cookie,
) error

// PostHook is invoked with each finished outcome.
type PostHook func(ctx context.Context, outcome Outcome) error

// DefaultRunner is the standard Runner implementation.
type DefaultRunner struct {
	engine    assertion.Engine
	logger    logging.Logger
	failFast  bool
	domain    string
	preHooks  []PreHook
	postHooks []PostHook
}

// NewRunner creates a DefaultRunner with the supplied options.
func NewRunner(opts ...RunnerOption) *DefaultRunner {
	r := &DefaultRunner{
		engine: assertion.NewEngine(),
		logger: logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates expectations in order. The context is checked
// between expectations. Invalid assertions and failing
// pre-hooks abort the run; the outcomes gathered so far are
// returned with the error.
func (r *DefaultRunner) Run(
	ctx context.Context,
	expectations []*bank.Expectation,
	j *jar.Jar,
) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(expectations))

	for _, exp := range expectations {
		if err := ctx.Err(); err != nil {
			return outcomes, fmt.Errorf("run cancelled: %w", err)
		}

		outcome, err := r.evaluate(ctx, exp, j)
		if err != nil {
			return outcomes, fmt.Errorf(
				"expectation %s: %w", exp.Cookie, err,
			)
		}
		outcomes = append(outcomes, outcome)

		if r.failFast && !outcome.Passed() {
			r.logger.Info("stopping after first failure",
				logging.CookieField(exp.Cookie),
			)
			break
		}
	}

	return outcomes, nil
}

// RunParallel evaluates expectations concurrently. Fail-fast does
// not apply: every expectation that starts is evaluated.
func (r *DefaultRunner) RunParallel(
	ctx context.Context,
	expectations []*bank.Expectation,
	j *jar.Jar,
	maxConcurrency int,
) ([]Outcome, error) {
	return runParallel(ctx, r, expectations, j, maxConcurrency)
}

// evaluate runs one expectation through its lifecycle: lookup ->
// pre-hooks -> build -> match -> post-hooks.
func (r *DefaultRunner) evaluate(
	ctx context.Context,
	exp *bank.Expectation,
	j *jar.Jar,
) (Outcome, error) {
	start := time.Now()

	var found *cookie.Cookie
	if j != nil {
		found = j.Find(exp.Cookie, r.domain)
	}

	logger := r.logger.WithFields(logging.CookieField(exp.Cookie))
	if found != nil {
		logger = logging.NewRedactingLogger(logger, found.Value)
	}

	for _, hook := range r.preHooks {
		if err := hook(ctx, exp, found); err != nil {
			return Outcome{}, fmt.Errorf("pre-hook failed: %w", err)
		}
	}

	m, err := r.engine.Build(exp.Assertions)
	if err != nil {
		return Outcome{}, err
	}

	report := m.Evaluate(found)

	outcome := Outcome{
		Cookie:      exp.Cookie,
		Description: exp.Description,
		Status:      StatusPassed,
		Report:      report,
		Duration:    time.Since(start),
	}
	if !report.Passed {
		outcome.Status = StatusFailed
		logger.Warn("expectation failed",
			logging.StringField("mismatch", report.Mismatch()),
		)
	} else {
		logger.Debug("expectation passed",
			logging.IntField("assertions", len(exp.Assertions)),
		)
	}

	for _, hook := range r.postHooks {
		if err := hook(ctx, outcome); err != nil {
			logger.Warn("post-hook failed", logging.ErrorField(err))
		}
	}

	return outcome, nil
}
