package scenario

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-petr/bank-e2e/internal/accountapi"
	"github.com/go-petr/bank-e2e/internal/check"
	"github.com/go-petr/bank-e2e/internal/domain"
	"github.com/go-petr/bank-e2e/internal/fixture"
	"github.com/go-petr/bank-e2e/internal/transactionapi"
	"github.com/go-petr/bank-e2e/internal/userapi"
	"github.com/go-petr/bank-e2e/internal/webclient"
	"github.com/go-petr/bank-e2e/pkg/configpkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Workflows builds the concrete banking scenarios over the entity facades.
type Workflows struct {
	users        *userapi.Service
	accounts     *accountapi.Service
	transactions *transactionapi.Service
	gen          fixture.Generator

	schemaValidation bool
	latencyCeiling   time.Duration
	logger           zerolog.Logger
}

// NewWorkflows wires the three facades over one client and configuration snapshot.
func NewWorkflows(client *webclient.Client, config configpkg.Config, logger zerolog.Logger) *Workflows {
	return &Workflows{
		users:            userapi.New(client, logger),
		accounts:         accountapi.New(client, logger),
		transactions:     transactionapi.New(client, logger),
		gen:              fixture.NewGenerator(),
		schemaValidation: config.SchemaValidationEnabled,
		latencyCeiling:   config.ResponseTimeCeiling,
		logger:           logger,
	}
}

// verify layers the standard response checks: exact status, then schema
// conformance when enabled, then the latency ceiling.
func (w *Workflows) verify(env *webclient.Envelope, wantStatus int, schemaName string) error {
	if err := check.Status(env, wantStatus); err != nil {
		return err
	}

	if w.schemaValidation && schemaName != "" {
		if err := check.Schema(env, schemaName); err != nil {
			return err
		}
	}

	if w.latencyCeiling > 0 {
		if err := check.LatencyUnder(env, w.latencyCeiling); err != nil {
			return err
		}
	}

	return nil
}

func (w *Workflows) createUserStep(params domain.CreateUserParams, into func(*State, domain.User)) Step {
	return Step{
		Name: "create user",
		Run: func(ctx context.Context, state *State) error {
			env, err := w.users.Create(ctx, params)
			if err != nil {
				return err
			}

			if err := w.verify(env, http.StatusCreated, check.SchemaUser); err != nil {
				return err
			}

			var user domain.User
			if err := env.Decode(&user); err != nil {
				return err
			}

			if user.ID <= 0 {
				return fmt.Errorf("created user has no id")
			}

			into(state, user)

			return nil
		},
	}
}

func (w *Workflows) createAccountStep(name string, params func(*State) domain.CreateAccountParams, into func(*State, domain.Account)) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context, state *State) error {
			p := params(state)

			env, err := w.accounts.Create(ctx, p)
			if err != nil {
				return err
			}

			if err := w.verify(env, http.StatusCreated, check.SchemaAccount); err != nil {
				return err
			}

			var account domain.Account
			if err := env.Decode(&account); err != nil {
				return err
			}

			if account.ID <= 0 {
				return fmt.Errorf("created account has no id")
			}

			if account.AccountNumber == "" {
				return fmt.Errorf("created account has no account number")
			}

			if account.UserID != p.UserID {
				return fmt.Errorf("account user id: got %d, want %d", account.UserID, p.UserID)
			}

			into(state, account)

			return nil
		},
	}
}

func (w *Workflows) createTransactionStep(params func(*State) domain.CreateTransactionParams) Step {
	return Step{
		Name: "perform transaction",
		Run: func(ctx context.Context, state *State) error {
			p := params(state)

			env, err := w.transactions.Create(ctx, p)
			if err != nil {
				return err
			}

			if err := w.verify(env, http.StatusCreated, check.SchemaTransaction); err != nil {
				return err
			}

			var tx domain.Transaction
			if err := env.Decode(&tx); err != nil {
				return err
			}

			if tx.ID <= 0 {
				return fmt.Errorf("created transaction has no id")
			}

			if tx.TransactionReference == "" {
				return fmt.Errorf("created transaction has no reference")
			}

			// Exact decimal equality, never float approximation.
			if !tx.Amount.Equal(p.Amount) {
				return fmt.Errorf("transaction amount: got %s, want %s", tx.Amount, p.Amount)
			}

			state.TransactionID = tx.ID
			state.TransactionRef = tx.TransactionReference

			return nil
		},
	}
}

func (w *Workflows) verifyHistoryStep(accountID func(*State) int64) Step {
	return Step{
		Name: "verify transaction in account history",
		Run: func(ctx context.Context, state *State) error {
			env, err := w.transactions.GetByAccountID(ctx, accountID(state))
			if err != nil {
				return err
			}

			if err := w.verify(env, http.StatusOK, check.SchemaTransactionList); err != nil {
				return err
			}

			var history []domain.Transaction
			if err := env.Decode(&history); err != nil {
				return err
			}

			// Existence over an unordered collection, not positional.
			for _, tx := range history {
				if tx.ID == state.TransactionID {
					return nil
				}
			}

			return fmt.Errorf("transaction %d not found in account history of %d entries",
				state.TransactionID, len(history))
		},
	}
}

func (w *Workflows) verifyByReferenceStep() Step {
	return Step{
		Name: "verify transaction by reference",
		Run: func(ctx context.Context, state *State) error {
			env, err := w.transactions.GetByReference(ctx, state.TransactionRef)
			if err != nil {
				return err
			}

			if err := w.verify(env, http.StatusOK, check.SchemaTransaction); err != nil {
				return err
			}

			var tx domain.Transaction
			if err := env.Decode(&tx); err != nil {
				return err
			}

			if tx.ID != state.TransactionID {
				return fmt.Errorf("transaction by reference: got id %d, want %d", tx.ID, state.TransactionID)
			}

			return nil
		},
	}
}

// UserAccountTransaction is the complete banking workflow: create user,
// create account, perform a transaction and verify it through both lookup
// paths. For a TRANSFER a second user and account supply a distinct
// destination; otherwise the single account serves as both sides.
func (w *Workflows) UserAccountTransaction(user domain.CreateUserParams, account domain.CreateAccountParams, tx domain.CreateTransactionParams) *Scenario {
	isTransfer := tx.TransactionType == domain.TransactionTypeTransfer

	steps := []Step{
		w.createUserStep(user, func(s *State, u domain.User) { s.UserID = u.ID }),
		w.createAccountStep("create account",
			func(s *State) domain.CreateAccountParams {
				account.UserID = s.UserID
				return account
			},
			func(s *State, a domain.Account) {
				s.AccountID = a.ID
				s.AccountNumber = a.AccountNumber
			}),
	}

	if isTransfer {
		secondUser := w.gen.ValidUser()

		steps = append(steps,
			w.createUserStep(secondUser, func(s *State, u domain.User) { s.SecondUserID = u.ID }),
			w.createAccountStep("create second account for transfer",
				func(s *State) domain.CreateAccountParams {
					return w.gen.CheckingAccount(s.SecondUserID)
				},
				func(s *State, a domain.Account) { s.SecondAccountID = a.ID }),
		)
	}

	steps = append(steps,
		w.createTransactionStep(func(s *State) domain.CreateTransactionParams {
			tx.FromAccountID = s.AccountID
			if isTransfer {
				tx.ToAccountID = s.SecondAccountID
			} else {
				tx.ToAccountID = s.AccountID
			}
			return tx
		}),
		w.verifyHistoryStep(func(s *State) int64 { return s.AccountID }),
		w.verifyByReferenceStep(),
	)

	return &Scenario{
		Name:   "user account transaction: " + tx.TransactionType,
		Steps:  steps,
		logger: w.logger,
	}
}

// MultiAccountTransfer creates one user holding a savings and a checking
// account, transfers between them, and verifies both account histories.
func (w *Workflows) MultiAccountTransfer() *Scenario {
	user := w.gen.ValidUser()
	amount := decimal.RequireFromString("300.00")

	steps := []Step{
		w.createUserStep(user, func(s *State, u domain.User) { s.UserID = u.ID }),
		w.createAccountStep("create savings account",
			func(s *State) domain.CreateAccountParams { return w.gen.SavingsAccount(s.UserID) },
			func(s *State, a domain.Account) { s.AccountID = a.ID }),
		w.createAccountStep("create checking account",
			func(s *State) domain.CreateAccountParams { return w.gen.CheckingAccount(s.UserID) },
			func(s *State, a domain.Account) { s.SecondAccountID = a.ID }),
		{
			Name: "verify user holds both accounts",
			Run: func(ctx context.Context, state *State) error {
				env, err := w.accounts.GetByUserID(ctx, state.UserID)
				if err != nil {
					return err
				}

				if err := w.verify(env, http.StatusOK, check.SchemaAccountList); err != nil {
					return err
				}

				var accounts []domain.Account
				if err := env.Decode(&accounts); err != nil {
					return err
				}

				if len(accounts) < 2 {
					return fmt.Errorf("user accounts: got %d, want at least 2", len(accounts))
				}

				return nil
			},
		},
		w.createTransactionStep(func(s *State) domain.CreateTransactionParams {
			return w.gen.Transfer(s.AccountID, s.SecondAccountID, amount)
		}),
		w.verifyHistoryStep(func(s *State) int64 { return s.AccountID }),
		w.verifyHistoryStep(func(s *State) int64 { return s.SecondAccountID }),
		w.verifyByReferenceStep(),
	}

	return &Scenario{Name: "multi-account transfer", Steps: steps, logger: w.logger}
}

// AccountLifecycle exercises an account end to end: create, deposit three
// times, verify the history, update the account type, and re-fetch it.
func (w *Workflows) AccountLifecycle() *Scenario {
	user := w.gen.ValidUser()
	account := w.gen.SavingsAccount(0)
	depositAmount := decimal.RequireFromString("100.00")

	steps := []Step{
		w.createUserStep(user, func(s *State, u domain.User) { s.UserID = u.ID }),
		w.createAccountStep("create account",
			func(s *State) domain.CreateAccountParams {
				account.UserID = s.UserID
				return account
			},
			func(s *State, a domain.Account) { s.AccountID = a.ID }),
		{
			Name: "perform three deposits",
			Run: func(ctx context.Context, state *State) error {
				for i := 0; i < 3; i++ {
					env, err := w.transactions.Create(ctx, w.gen.Deposit(state.AccountID, depositAmount))
					if err != nil {
						return err
					}

					if err := w.verify(env, http.StatusCreated, check.SchemaTransaction); err != nil {
						return fmt.Errorf("deposit %d: %w", i+1, err)
					}
				}

				return nil
			},
		},
		{
			Name: "verify transaction history",
			Run: func(ctx context.Context, state *State) error {
				env, err := w.transactions.GetByAccountID(ctx, state.AccountID)
				if err != nil {
					return err
				}

				if err := w.verify(env, http.StatusOK, check.SchemaTransactionList); err != nil {
					return err
				}

				var history []domain.Transaction
				if err := env.Decode(&history); err != nil {
					return err
				}

				if len(history) < 3 {
					return fmt.Errorf("transaction history: got %d entries, want at least 3", len(history))
				}

				return nil
			},
		},
		{
			Name: "update account type",
			Run: func(ctx context.Context, state *State) error {
				update := account
				update.UserID = state.UserID
				update.AccountType = domain.AccountTypeChecking
				update.CreditLimit = decimal.RequireFromString("1000.00")

				env, err := w.accounts.Update(ctx, state.AccountID, update)
				if err != nil {
					return err
				}

				if err := w.verify(env, http.StatusOK, check.SchemaAccount); err != nil {
					return err
				}

				return check.FieldEquals(env, "accountType", domain.AccountTypeChecking)
			},
		},
		{
			Name: "verify account accessible after update",
			Run: func(ctx context.Context, state *State) error {
				env, err := w.accounts.GetByID(ctx, state.AccountID)
				if err != nil {
					return err
				}

				return w.verify(env, http.StatusOK, check.SchemaAccount)
			},
		},
	}

	return &Scenario{Name: "account lifecycle", Steps: steps, logger: w.logger}
}

// InvalidAccountRejected submits an account payload with an empty type and
// expects a client-error status.
func (w *Workflows) InvalidAccountRejected() *Scenario {
	user := w.gen.ValidUser()

	steps := []Step{
		w.createUserStep(user, func(s *State, u domain.User) { s.UserID = u.ID }),
		{
			Name: "create account with empty type",
			Run: func(ctx context.Context, state *State) error {
				env, err := w.accounts.Create(ctx, w.gen.InvalidAccountEmptyType(state.UserID))
				if err != nil {
					return err
				}

				return check.StatusBetween(env, 400, 499)
			},
		},
	}

	return &Scenario{Name: "invalid account rejected", Steps: steps, logger: w.logger}
}

// InsufficientFundsRejected transfers more than the source balance holds and
// expects a client-error status.
func (w *Workflows) InsufficientFundsRejected() *Scenario {
	user := w.gen.ValidUser()
	secondUser := w.gen.ValidUser()

	steps := []Step{
		w.createUserStep(user, func(s *State, u domain.User) { s.UserID = u.ID }),
		w.createAccountStep("create account with 50.00 balance",
			func(s *State) domain.CreateAccountParams {
				account := w.gen.SavingsAccount(s.UserID)
				account.Balance = decimal.RequireFromString("50.00")
				return account
			},
			func(s *State, a domain.Account) { s.AccountID = a.ID }),
		w.createUserStep(secondUser, func(s *State, u domain.User) { s.SecondUserID = u.ID }),
		w.createAccountStep("create destination account",
			func(s *State) domain.CreateAccountParams {
				return w.gen.CheckingAccount(s.SecondUserID)
			},
			func(s *State, a domain.Account) { s.SecondAccountID = a.ID }),
		{
			Name: "transfer exceeding balance",
			Run: func(ctx context.Context, state *State) error {
				transfer := w.gen.Transfer(state.AccountID, state.SecondAccountID,
					decimal.RequireFromString("100.00"))

				env, err := w.transactions.Create(ctx, transfer)
				if err != nil {
					return err
				}

				return check.StatusBetween(env, 400, 499)
			},
		},
	}

	return &Scenario{Name: "insufficient funds rejected", Steps: steps, logger: w.logger}
}

// DeleteThenFetch deletes a freshly created account and user and expects an
// immediate fetch of each to return 404.
func (w *Workflows) DeleteThenFetch() *Scenario {
	user := w.gen.ValidUser()

	steps := []Step{
		w.createUserStep(user, func(s *State, u domain.User) { s.UserID = u.ID }),
		w.createAccountStep("create account",
			func(s *State) domain.CreateAccountParams { return w.gen.ValidAccount(s.UserID) },
			func(s *State, a domain.Account) { s.AccountID = a.ID }),
		{
			Name: "delete account",
			Run: func(ctx context.Context, state *State) error {
				env, err := w.accounts.Delete(ctx, state.AccountID)
				if err != nil {
					return err
				}

				return check.Status(env, http.StatusNoContent)
			},
		},
		{
			Name: "fetch deleted account",
			Run: func(ctx context.Context, state *State) error {
				env, err := w.accounts.GetByID(ctx, state.AccountID)
				if err != nil {
					return err
				}

				return check.Status(env, http.StatusNotFound)
			},
		},
		{
			Name: "delete user",
			Run: func(ctx context.Context, state *State) error {
				env, err := w.users.Delete(ctx, state.UserID)
				if err != nil {
					return err
				}

				return check.Status(env, http.StatusNoContent)
			},
		},
		{
			Name: "fetch deleted user",
			Run: func(ctx context.Context, state *State) error {
				env, err := w.users.GetByID(ctx, state.UserID)
				if err != nil {
					return err
				}

				return check.Status(env, http.StatusNotFound)
			},
		},
	}

	return &Scenario{Name: "delete then fetch", Steps: steps, logger: w.logger}
}
