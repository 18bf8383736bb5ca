package scenario

import (
	"context"
	"errors"
	"time"

	"github.com/go-petr/bank-e2e/internal/report"
	"github.com/go-petr/bank-e2e/internal/retrypolicy"
	"github.com/rs/zerolog"
)

// Runner executes scenarios under the retry policy and emits one report
// event per scenario invocation.
type Runner struct {
	Suite      string
	RetryCount int
	Timeout    time.Duration
	Sink       report.Sink
	Logger     zerolog.Logger
}

// Run builds and executes one scenario. The build function is re-invoked on
// every retry attempt so fixtures are regenerated from scratch with no
// partial-state carry-over. Retry applies at the scenario level, never
// per step.
func (r *Runner) Run(ctx context.Context, build func() *Scenario) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	policy := retrypolicy.New(r.RetryCount, r.Logger)

	current := build()
	name := current.Name
	start := time.Now()

	err := policy.Run(ctx, name, func(ctx context.Context) error {
		if current == nil {
			current = build()
		}

		s := current
		current = nil

		return s.Run(ctx)
	})

	event := report.Event{
		Suite:    r.Suite,
		Test:     name,
		Outcome:  report.Pass,
		Attempts: policy.Attempts(),
		Elapsed:  time.Since(start),
	}

	if err != nil {
		event.Outcome = report.Fail
		event.Err = err

		var stepErr *StepError
		if errors.As(err, &stepErr) {
			event.Step = stepErr.Step
		}
	}

	if r.Sink != nil {
		r.Sink.Record(event)
	}

	return err
}
