// Package scenario composes facade calls into multi-step end-to-end tests,
// carrying created-entity identifiers from one step into the next.
package scenario

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// State carries server-assigned identifiers forward between steps. The
// running scenario owns it exclusively; nothing is shared across test cases.
type State struct {
	UserID          int64
	SecondUserID    int64
	AccountID       int64
	AccountNumber   string
	SecondAccountID int64
	TransactionID   int64
	TransactionRef  string
}

// Step is one unit of an end-to-end scenario.
type Step struct {
	Name string
	Run  func(ctx context.Context, state *State) error
}

// StepError wraps a step failure with the name of the step that raised it.
type StepError struct {
	Scenario string
	Step     string
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %q: %v", e.Scenario, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Scenario is a fixed pipeline of dependent steps.
type Scenario struct {
	Name   string
	Steps  []Step
	logger zerolog.Logger
}

// Run executes the steps strictly in order against a fresh State. The first
// failing step aborts the scenario; there is no partial continuation.
func (s *Scenario) Run(ctx context.Context) error {
	state := &State{}

	for i, step := range s.Steps {
		s.logger.Info().
			Str("scenario", s.Name).
			Int("step", i+1).
			Str("name", step.Name).
			Msg("running step")

		if err := ctx.Err(); err != nil {
			return &StepError{Scenario: s.Name, Step: step.Name, Err: err}
		}

		if err := step.Run(ctx, state); err != nil {
			return &StepError{Scenario: s.Name, Step: step.Name, Err: err}
		}
	}

	return nil
}
