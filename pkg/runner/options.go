package runner

import (
	"digital.vasic.cookiematch/pkg/assertion"
	"digital.vasic.cookiematch/pkg/logging"
)

// RunnerOption configures a DefaultRunner.
type RunnerOption func(*DefaultRunner)

// WithEngine sets the assertion engine used to build matchers.
func WithEngine(engine assertion.Engine) RunnerOption {
	return func(r *DefaultRunner) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithLogger sets the logger used by the runner. Cookie values
// are redacted from everything the runner logs.
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *DefaultRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFailFast stops a sequential run after the first failed
// expectation.
func WithFailFast(enabled bool) RunnerOption {
	return func(r *DefaultRunner) {
		r.failFast = enabled
	}
}

// WithDomain restricts cookie lookups to domain.
func WithDomain(domain string) RunnerOption {
	return func(r *DefaultRunner) {
		r.domain = domain
	}
}

// WithPreHook adds a hook run before each expectation is
// evaluated. A failing pre-hook aborts the run.
func WithPreHook(h PreHook) RunnerOption {
	return func(r *DefaultRunner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a hook run after each expectation is
// evaluated. Post-hook errors are logged as warnings.
func WithPostHook(h PostHook) RunnerOption {
	return func(r *DefaultRunner) {
		r.postHooks = append(r.postHooks, h)
	}
}
