// Package retrypolicy re-invokes a failed test execution up to a configured
// maximum before surfacing the failure.
//
// The policy is scoped to one test invocation and is intentionally blind to
// the failure cause: assertion and transport failures retry identically.
// Setup-time fixture and configuration failures must not enter the policy
// at all.
package retrypolicy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// State of a policy over one test invocation.
type State int

const (
	// Attempting means further retries remain available.
	Attempting State = iota
	// Exhausted means the attempt budget is spent and the failure surfaced.
	Exhausted
)

// Policy wraps a single test execution. Not safe for concurrent use; build
// one Policy per test invocation so concurrent tests never share counters.
type Policy struct {
	maxRetries int
	attempts   int
	state      State
	logger     zerolog.Logger
}

// New returns a Policy allowing maxRetries re-invocations after the first failure.
func New(maxRetries int, logger zerolog.Logger) *Policy {
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Policy{maxRetries: maxRetries, logger: logger}
}

// Attempts reports how many times fn has been invoked.
func (p *Policy) Attempts() int {
	return p.attempts
}

// State reports whether the policy can still retry.
func (p *Policy) State() State {
	return p.state
}

// Run invokes fn, re-invoking it from scratch on failure while attempts
// remain. It returns nil on the first success, or the last failure
// annotated with the attempt count once the budget is exhausted.
func (p *Policy) Run(ctx context.Context, name string, fn func(context.Context) error) error {
	var lastErr error

	for p.attempts = 1; ; p.attempts++ {
		if err := ctx.Err(); err != nil {
			p.state = Exhausted
			return fmt.Errorf("%s canceled before attempt %d: %w", name, p.attempts, err)
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if p.attempts > p.maxRetries {
			p.state = Exhausted

			return fmt.Errorf("%s failed after %d attempt(s): %w", name, p.attempts, lastErr)
		}

		p.logger.Warn().
			Str("test", name).
			Int("attempt", p.attempts).
			Int("max_retries", p.maxRetries).
			Err(lastErr).
			Msg("retrying failed test")
	}
}
