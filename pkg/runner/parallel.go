package runner

import (
	"context"
	"fmt"
	"sync"

	"digital.vasic.cookiematch/pkg/bank"
	"digital.vasic.cookiematch/pkg/jar"
)

// parallelResult pairs an outcome with its original index so
// outcomes can be returned in submission order.
type parallelResult struct {
	index   int
	outcome Outcome
	ok      bool
	err     error
}

// runParallel evaluates expectations concurrently with a
// semaphore limiting maxConcurrency goroutines. Outcomes are
// returned in the same order as the input; expectations that
// never started because ctx was cancelled are left out.
func runParallel(
	ctx context.Context,
	r *DefaultRunner,
	expectations []*bank.Expectation,
	j *jar.Jar,
	maxConcurrency int,
) ([]Outcome, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	sem := make(chan struct{}, maxConcurrency)
	resultsCh := make(chan parallelResult, len(expectations))

	var wg sync.WaitGroup

	for i, exp := range expectations {
		wg.Add(1)
		go func(idx int, exp *bank.Expectation) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultsCh <- parallelResult{
					index: idx,
					err:   fmt.Errorf("run cancelled: %w", ctx.Err()),
				}
				return
			}
			if err := ctx.Err(); err != nil {
				resultsCh <- parallelResult{
					index: idx,
					err:   fmt.Errorf("run cancelled: %w", err),
				}
				return
			}

			outcome, err := r.evaluate(ctx, exp, j)
			if err != nil {
				resultsCh <- parallelResult{
					index: idx,
					err: fmt.Errorf(
						"expectation %s: %w", exp.Cookie, err,
					),
				}
				return
			}
			resultsCh <- parallelResult{
				index:   idx,
				outcome: outcome,
				ok:      true,
			}
		}(i, exp)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	ordered := make([]parallelResult, len(expectations))
	var firstErr error
	for pr := range resultsCh {
		if pr.err != nil && firstErr == nil {
			firstErr = pr.err
		}
		ordered[pr.index] = pr
	}

	outcomes := make([]Outcome, 0, len(expectations))
	for _, pr := range ordered {
		if pr.ok {
			outcomes = append(outcomes, pr.outcome)
		}
	}

	return outcomes, firstErr
}
