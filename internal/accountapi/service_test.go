package accountapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-petr/bank-e2e/internal/accountapi"
	"github.com/go-petr/bank-e2e/internal/bankstub"
	"github.com/go-petr/bank-e2e/internal/check"
	"github.com/go-petr/bank-e2e/internal/domain"
	"github.com/go-petr/bank-e2e/internal/fixture"
	"github.com/go-petr/bank-e2e/internal/userapi"
	"github.com/go-petr/bank-e2e/internal/webclient"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*accountapi.Service, int64) {
	t.Helper()

	_, server := bankstub.Start(t)
	client := webclient.New(bankstub.ClientConfig(t, server), zerolog.Nop())

	users := userapi.New(client, zerolog.Nop())

	env, err := users.Create(context.Background(), fixture.NewGenerator().ValidUser())
	require.NoError(t, err)

	var owner domain.User
	require.NoError(t, env.Decode(&owner))

	return accountapi.New(client, zerolog.Nop()), owner.ID
}

func TestCreateAndGet(t *testing.T) {
	accounts, userID := setup(t)
	ctx := context.Background()

	params := fixture.NewGenerator().SavingsAccount(userID)

	env, err := accounts.Create(ctx, params)
	require.NoError(t, err)
	require.NoError(t, check.Status(env, http.StatusCreated))
	require.NoError(t, check.Schema(env, check.SchemaAccount))

	var created domain.Account
	require.NoError(t, env.Decode(&created))
	require.Positive(t, created.ID)
	require.NotEmpty(t, created.AccountNumber)
	require.Equal(t, userID, created.UserID)
	require.True(t, created.Balance.Equal(params.Balance))

	env, err = accounts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, check.Status(env, http.StatusOK))
}

func TestGetByAccountNumber(t *testing.T) {
	accounts, userID := setup(t)
	ctx := context.Background()

	env, err := accounts.Create(ctx, fixture.NewGenerator().CheckingAccount(userID))
	require.NoError(t, err)

	var created domain.Account
	require.NoError(t, env.Decode(&created))

	env, err = accounts.GetByAccountNumber(ctx, created.AccountNumber)
	require.NoError(t, err)
	require.NoError(t, check.Status(env, http.StatusOK))
	require.NoError(t, check.FieldEquals(env, "accountNumber", created.AccountNumber))
}

func TestGetByUserID(t *testing.T) {
	accounts, userID := setup(t)
	ctx := context.Background()
	g := fixture.NewGenerator()

	_, err := accounts.Create(ctx, g.SavingsAccount(userID))
	require.NoError(t, err)
	_, err = accounts.Create(ctx, g.CheckingAccount(userID))
	require.NoError(t, err)

	env, err := accounts.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, check.Status(env, http.StatusOK))
	require.NoError(t, check.Schema(env, check.SchemaAccountList))

	var owned []domain.Account
	require.NoError(t, env.Decode(&owned))
	require.Len(t, owned, 2)

	for _, account := range owned {
		require.Equal(t, userID, account.UserID)
	}
}

func TestCreateForMissingOwner(t *testing.T) {
	accounts, _ := setup(t)

	env, err := accounts.Create(context.Background(), fixture.NewGenerator().SavingsAccount(9999))
	require.NoError(t, err)
	require.NoError(t, check.StatusBetween(env, 400, 499))
	require.NoError(t, check.Schema(env, check.SchemaErrorBody))
}

func TestCreateEmptyTypeRejected(t *testing.T) {
	accounts, userID := setup(t)

	env, err := accounts.Create(context.Background(), fixture.NewGenerator().InvalidAccountEmptyType(userID))
	require.NoError(t, err)
	require.NoError(t, check.StatusBetween(env, 400, 499))
}

func TestUpdate(t *testing.T) {
	accounts, userID := setup(t)
	ctx := context.Background()

	params := fixture.NewGenerator().SavingsAccount(userID)

	env, err := accounts.Create(ctx, params)
	require.NoError(t, err)

	var created domain.Account
	require.NoError(t, env.Decode(&created))

	params.AccountType = domain.AccountTypeChecking
	env, err = accounts.Update(ctx, created.ID, params)
	require.NoError(t, err)
	require.NoError(t, check.Status(env, http.StatusOK))
	require.NoError(t, check.FieldEquals(env, "accountType", domain.AccountTypeChecking))
}

func TestDeleteThenGetReturnsNotFound(t *testing.T) {
	accounts, userID := setup(t)
	ctx := context.Background()

	env, err := accounts.Create(ctx, fixture.NewGenerator().BusinessAccount(userID))
	require.NoError(t, err)

	var created domain.Account
	require.NoError(t, env.Decode(&created))

	env, err = accounts.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, check.Status(env, http.StatusNoContent))

	env, err = accounts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, check.Status(env, http.StatusNotFound))
}
