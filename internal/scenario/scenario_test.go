package scenario_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-petr/bank-e2e/internal/bankstub"
	"github.com/go-petr/bank-e2e/internal/domain"
	"github.com/go-petr/bank-e2e/internal/fixture"
	"github.com/go-petr/bank-e2e/internal/report"
	"github.com/go-petr/bank-e2e/internal/scenario"
	"github.com/go-petr/bank-e2e/internal/webclient"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupWorkflows(t *testing.T) (*scenario.Workflows, *report.MemorySink, *scenario.Runner) {
	t.Helper()

	_, server := bankstub.Start(t)

	config := bankstub.ClientConfig(t, server)
	config.SchemaValidationEnabled = true
	config.ResponseTimeCeiling = 5 * time.Second

	client := webclient.New(config, zerolog.Nop())
	workflows := scenario.NewWorkflows(client, config, zerolog.Nop())

	sink := report.NewMemorySink()
	runner := &scenario.Runner{
		Suite:      "e2e",
		RetryCount: config.RetryCount,
		Timeout:    30 * time.Second,
		Sink:       sink,
		Logger:     zerolog.Nop(),
	}

	return workflows, sink, runner
}

// The literal workflow example: jdoe1 opens a savings account and deposits 100.00.
func TestUserAccountTransactionDeposit(t *testing.T) {
	workflows, sink, runner := setupWorkflows(t)

	user := domain.CreateUserParams{
		Username:    "jdoe1",
		Email:       "jdoe1@test.com",
		Password:    "Secr3t!",
		FullName:    "Jane Doe",
		PhoneNumber: "+1234567890",
	}
	account := domain.CreateAccountParams{
		AccountType: domain.AccountTypeSavings,
		Balance:     decimal.RequireFromString("1000.00"),
		CreditLimit: decimal.RequireFromString("0.00"),
	}
	tx := domain.CreateTransactionParams{
		TransactionType: domain.TransactionTypeDeposit,
		Amount:          decimal.RequireFromString("100.00"),
		Currency:        "USD",
		Description:     "Test deposit transaction",
	}

	err := runner.Run(context.Background(), func() *scenario.Scenario {
		return workflows.UserAccountTransaction(user, account, tx)
	})
	require.NoError(t, err)

	events := sink.Events()
	require.Len(t, events, 1)
	require.Equal(t, report.Pass, events[0].Outcome)
	require.Equal(t, 1, events[0].Attempts)
}

func TestUserAccountTransactionAllTypes(t *testing.T) {
	testCases := []struct {
		name            string
		transactionType string
		amount          string
	}{
		{"Deposit", domain.TransactionTypeDeposit, "250.00"},
		{"Withdrawal", domain.TransactionTypeWithdrawal, "50.00"},
		{"Transfer", domain.TransactionTypeTransfer, "100.00"},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			workflows, _, runner := setupWorkflows(t)
			g := fixture.NewGenerator()

			err := runner.Run(context.Background(), func() *scenario.Scenario {
				account := g.SavingsAccount(0)
				tx := domain.CreateTransactionParams{
					TransactionType: tc.transactionType,
					Amount:          decimal.RequireFromString(tc.amount),
					Currency:        "USD",
				}

				return workflows.UserAccountTransaction(g.ValidUser(), account, tx)
			})
			require.NoError(t, err)
		})
	}
}

func TestMultiAccountTransfer(t *testing.T) {
	workflows, _, runner := setupWorkflows(t)

	err := runner.Run(context.Background(), workflows.MultiAccountTransfer)
	require.NoError(t, err)
}

func TestAccountLifecycle(t *testing.T) {
	workflows, _, runner := setupWorkflows(t)

	err := runner.Run(context.Background(), workflows.AccountLifecycle)
	require.NoError(t, err)
}

func TestInvalidAccountRejected(t *testing.T) {
	workflows, _, runner := setupWorkflows(t)

	err := runner.Run(context.Background(), workflows.InvalidAccountRejected)
	require.NoError(t, err)
}

func TestInsufficientFundsRejected(t *testing.T) {
	workflows, _, runner := setupWorkflows(t)

	err := runner.Run(context.Background(), workflows.InsufficientFundsRejected)
	require.NoError(t, err)
}

func TestDeleteThenFetch(t *testing.T) {
	workflows, _, runner := setupWorkflows(t)

	err := runner.Run(context.Background(), workflows.DeleteThenFetch)
	require.NoError(t, err)
}

func TestScenarioAbortsOnFirstFailure(t *testing.T) {
	stepFailure := errors.New("assertion mismatch")
	secondRan := false

	s := &scenario.Scenario{
		Name: "aborting",
		Steps: []scenario.Step{
			{
				Name: "failing step",
				Run: func(context.Context, *scenario.State) error {
					return stepFailure
				},
			},
			{
				Name: "unreached step",
				Run: func(context.Context, *scenario.State) error {
					secondRan = true
					return nil
				},
			},
		},
	}

	err := s.Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, stepFailure)
	require.False(t, secondRan, "scenario continued past a failed step")

	var stepErr *scenario.StepError
	require.ErrorAs(t, err, &stepErr)
	require.Equal(t, "failing step", stepErr.Step)
}

func TestStateCarriesIdentifiersForward(t *testing.T) {
	s := &scenario.Scenario{
		Name: "state handoff",
		Steps: []scenario.Step{
			{
				Name: "produce",
				Run: func(_ context.Context, state *scenario.State) error {
					state.UserID = 42
					state.AccountID = 7
					return nil
				},
			},
			{
				Name: "consume",
				Run: func(_ context.Context, state *scenario.State) error {
					if state.UserID != 42 || state.AccountID != 7 {
						return errors.New("identifiers not carried forward")
					}
					return nil
				},
			},
		},
	}

	require.NoError(t, s.Run(context.Background()))
}

func TestRunnerRetriesFlakyScenario(t *testing.T) {
	_, sink, _ := setupWorkflows(t)

	runner := &scenario.Runner{
		Suite:      "e2e",
		RetryCount: 2,
		Sink:       sink,
		Logger:     zerolog.Nop(),
	}

	builds := 0
	err := runner.Run(context.Background(), func() *scenario.Scenario {
		builds++
		attempt := builds

		return &scenario.Scenario{
			Name: "flaky",
			Steps: []scenario.Step{{
				Name: "sometimes fails",
				Run: func(context.Context, *scenario.State) error {
					if attempt < 2 {
						return errors.New("transient")
					}
					return nil
				},
			}},
		}
	})
	require.NoError(t, err)

	// Fixtures are rebuilt once per attempt.
	require.Equal(t, 2, builds)

	events := sink.Events()
	require.Len(t, events, 1)
	require.Equal(t, report.Pass, events[0].Outcome)
	require.Equal(t, 2, events[0].Attempts)
}

func TestRunnerRecordsExhaustedFailure(t *testing.T) {
	sink := report.NewMemorySink()
	runner := &scenario.Runner{
		Suite:      "e2e",
		RetryCount: 1,
		Sink:       sink,
		Logger:     zerolog.Nop(),
	}

	err := runner.Run(context.Background(), func() *scenario.Scenario {
		return &scenario.Scenario{
			Name: "always broken",
			Steps: []scenario.Step{{
				Name: "create account",
				Run: func(context.Context, *scenario.State) error {
					return errors.New("status code: got 500, want 201")
				},
			}},
		}
	})
	require.Error(t, err)

	events := sink.Events()
	require.Len(t, events, 1)
	require.Equal(t, report.Fail, events[0].Outcome)
	require.Equal(t, 2, events[0].Attempts)
	require.Equal(t, "create account", events[0].Step)
	require.Error(t, events[0].Err)
}
