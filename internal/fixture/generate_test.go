package fixture

import (
	"testing"

	"github.com/go-petr/bank-e2e/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValidUser(t *testing.T) {
	g := NewGenerator()

	user := g.ValidUser()
	require.NoError(t, Validate(user))
	require.GreaterOrEqual(t, len(user.Username), 3)
	require.NotEmpty(t, user.Password)
}

func TestInvalidUsersFailValidation(t *testing.T) {
	g := NewGenerator()

	testCases := []struct {
		name   string
		params domain.CreateUserParams
	}{
		{"EmptyFields", g.InvalidUserEmptyFields()},
		{"BadEmail", g.InvalidUserBadEmail()},
		{"ShortUsername", g.InvalidUserShortUsername()},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, Validate(tc.params))
		})
	}
}

func TestUsersAreDistinct(t *testing.T) {
	g := NewGenerator()

	users := g.Users(5)
	require.Len(t, users, 5)

	seen := map[string]bool{}
	for _, u := range users {
		require.False(t, seen[u.Username], "duplicate username %s", u.Username)
		seen[u.Username] = true
	}
}

func TestAccountGenerators(t *testing.T) {
	g := NewGenerator()

	savings := g.SavingsAccount(1)
	require.NoError(t, Validate(savings))
	require.Equal(t, domain.AccountTypeSavings, savings.AccountType)
	require.True(t, savings.CreditLimit.IsZero())
	require.True(t, savings.Balance.IsPositive())

	checking := g.CheckingAccount(1)
	require.Equal(t, domain.AccountTypeChecking, checking.AccountType)

	business := g.BusinessAccount(1)
	require.Equal(t, domain.AccountTypeBusiness, business.AccountType)

	require.Error(t, Validate(g.InvalidAccountEmptyType(1)))
}

func TestTransactionGenerators(t *testing.T) {
	g := NewGenerator()

	deposit := g.Deposit(3, decimal.RequireFromString("100.00"))
	require.NoError(t, Validate(deposit))
	require.Equal(t, domain.TransactionTypeDeposit, deposit.TransactionType)
	require.Equal(t, deposit.FromAccountID, deposit.ToAccountID)
	require.True(t, deposit.Amount.Equal(decimal.RequireFromString("100.00")))

	transfer := g.Transfer(3, 4, decimal.NewFromInt(300))
	require.Equal(t, domain.TransactionTypeTransfer, transfer.TransactionType)
	require.NotEqual(t, transfer.FromAccountID, transfer.ToAccountID)

	zero := g.InvalidTransactionZeroAmount(3)
	require.True(t, zero.Amount.IsZero())

	negative := g.InvalidTransactionNegativeAmount(3)
	require.True(t, negative.Amount.IsNegative())
}
