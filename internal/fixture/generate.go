// Package fixture produces test payloads, either synthetic or loaded from
// external JSON and spreadsheet files.
package fixture

import (
	"github.com/go-petr/bank-e2e/internal/domain"
	"github.com/go-petr/bank-e2e/pkg/randompkg"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Validate runs struct-tag validation over a generated or loaded payload.
// Invalid fixtures fail fast at setup time, before any HTTP call.
func Validate(v any) error {
	return validate.Struct(v)
}

// Generator produces synthetic entity payloads. Payloads are regenerated
// per call so a retried test never reuses stale identifiers.
type Generator struct{}

// NewGenerator returns a Generator.
func NewGenerator() Generator {
	return Generator{}
}

// ValidUser generates a user payload that passes service validation.
func (Generator) ValidUser() domain.CreateUserParams {
	return domain.CreateUserParams{
		Username:    randompkg.Username(),
		Email:       randompkg.Email(),
		Password:    randompkg.Password(),
		FullName:    randompkg.FullName(),
		PhoneNumber: randompkg.PhoneNumber(),
	}
}

// Users generates n valid user payloads.
func (g Generator) Users(n int) []domain.CreateUserParams {
	users := make([]domain.CreateUserParams, n)
	for i := range users {
		users[i] = g.ValidUser()
	}

	return users
}

// InvalidUserEmptyFields generates a user payload with all fields empty.
func (Generator) InvalidUserEmptyFields() domain.CreateUserParams {
	return domain.CreateUserParams{}
}

// InvalidUserBadEmail generates a user payload with a malformed email.
func (g Generator) InvalidUserBadEmail() domain.CreateUserParams {
	user := g.ValidUser()
	user.Email = "invalid-email-format"

	return user
}

// InvalidUserShortUsername generates a user payload with a two-character username.
func (g Generator) InvalidUserShortUsername() domain.CreateUserParams {
	user := g.ValidUser()
	user.Username = "ab"

	return user
}

// ValidAccount generates an account payload of a random non-credit type.
func (Generator) ValidAccount(userID int64) domain.CreateAccountParams {
	return domain.CreateAccountParams{
		AccountType: randompkg.Pick(
			domain.AccountTypeSavings,
			domain.AccountTypeChecking,
			domain.AccountTypeBusiness,
		),
		Status:      domain.AccountStatusActive,
		UserID:      userID,
		Balance:     randompkg.MoneyBetween(100, 10_000),
		CreditLimit: randompkg.MoneyBetween(0, 2_000),
	}
}

// SavingsAccount generates a savings account payload with no credit line.
func (Generator) SavingsAccount(userID int64) domain.CreateAccountParams {
	return domain.CreateAccountParams{
		AccountType: domain.AccountTypeSavings,
		Status:      domain.AccountStatusActive,
		UserID:      userID,
		Balance:     randompkg.MoneyBetween(500, 5_000),
		CreditLimit: decimal.Zero,
	}
}

// CheckingAccount generates a checking account payload.
func (Generator) CheckingAccount(userID int64) domain.CreateAccountParams {
	return domain.CreateAccountParams{
		AccountType: domain.AccountTypeChecking,
		Status:      domain.AccountStatusActive,
		UserID:      userID,
		Balance:     randompkg.MoneyBetween(100, 2_000),
		CreditLimit: randompkg.MoneyBetween(100, 1_000),
	}
}

// BusinessAccount generates a business account payload.
func (Generator) BusinessAccount(userID int64) domain.CreateAccountParams {
	return domain.CreateAccountParams{
		AccountType: domain.AccountTypeBusiness,
		Status:      domain.AccountStatusActive,
		UserID:      userID,
		Balance:     randompkg.MoneyBetween(1_000, 50_000),
		CreditLimit: randompkg.MoneyBetween(1_000, 10_000),
	}
}

// InvalidAccountEmptyType generates an account payload with an empty type.
func (Generator) InvalidAccountEmptyType(userID int64) domain.CreateAccountParams {
	return domain.CreateAccountParams{
		AccountType: "",
		UserID:      userID,
		Balance:     decimal.NewFromInt(1_000),
	}
}

// ValidTransaction generates a transaction payload of a random type between
// the given accounts.
func (Generator) ValidTransaction(fromAccountID, toAccountID int64) domain.CreateTransactionParams {
	return domain.CreateTransactionParams{
		TransactionType: randompkg.Pick(
			domain.TransactionTypeDeposit,
			domain.TransactionTypeWithdrawal,
			domain.TransactionTypeTransfer,
		),
		Amount:        randompkg.MoneyBetween(10, 1_000),
		Currency:      "USD",
		Description:   randompkg.Sentence(),
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
	}
}

// Deposit generates a deposit payload into the given account.
func (Generator) Deposit(accountID int64, amount decimal.Decimal) domain.CreateTransactionParams {
	return domain.CreateTransactionParams{
		TransactionType: domain.TransactionTypeDeposit,
		Amount:          amount,
		Currency:        "USD",
		Description:     "Test deposit transaction",
		FromAccountID:   accountID,
		ToAccountID:     accountID,
	}
}

// Withdrawal generates a withdrawal payload from the given account.
func (Generator) Withdrawal(accountID int64, amount decimal.Decimal) domain.CreateTransactionParams {
	return domain.CreateTransactionParams{
		TransactionType: domain.TransactionTypeWithdrawal,
		Amount:          amount,
		Currency:        "USD",
		Description:     "Test withdrawal transaction",
		FromAccountID:   accountID,
		ToAccountID:     accountID,
	}
}

// Transfer generates a transfer payload between two accounts.
func (Generator) Transfer(fromAccountID, toAccountID int64, amount decimal.Decimal) domain.CreateTransactionParams {
	return domain.CreateTransactionParams{
		TransactionType: domain.TransactionTypeTransfer,
		Amount:          amount,
		Currency:        "USD",
		Description:     "Test transfer transaction",
		FromAccountID:   fromAccountID,
		ToAccountID:     toAccountID,
	}
}

// InvalidTransactionZeroAmount generates a deposit payload with a zero amount.
func (Generator) InvalidTransactionZeroAmount(accountID int64) domain.CreateTransactionParams {
	return domain.CreateTransactionParams{
		TransactionType: domain.TransactionTypeDeposit,
		Amount:          decimal.Zero,
		Currency:        "USD",
		Description:     "Invalid zero amount transaction",
		FromAccountID:   accountID,
		ToAccountID:     accountID,
	}
}

// InvalidTransactionNegativeAmount generates a withdrawal payload with a negative amount.
func (Generator) InvalidTransactionNegativeAmount(accountID int64) domain.CreateTransactionParams {
	return domain.CreateTransactionParams{
		TransactionType: domain.TransactionTypeWithdrawal,
		Amount:          decimal.NewFromInt(-100),
		Currency:        "USD",
		Description:     "Invalid negative amount transaction",
		FromAccountID:   accountID,
		ToAccountID:     accountID,
	}
}
