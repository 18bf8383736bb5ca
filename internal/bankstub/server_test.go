package bankstub_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/go-petr/bank-e2e/internal/bankstub"
	"github.com/go-petr/bank-e2e/internal/domain"
	"github.com/go-petr/bank-e2e/internal/fixture"
	"github.com/go-petr/bank-e2e/internal/webclient"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBearerTokenGate(t *testing.T) {
	_, server := bankstub.Start(t, bankstub.WithAuthToken("stub-secret"))
	ctx := context.Background()

	testCases := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"NoToken", "", http.StatusUnauthorized},
		{"WrongToken", "not-the-secret", http.StatusUnauthorized},
		{"CorrectToken", "stub-secret", http.StatusOK},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			config := bankstub.ClientConfig(t, server)
			config.AuthToken = tc.token

			client := webclient.New(config, zerolog.Nop())

			res, err := client.Get(ctx, "/users")
			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, res.StatusCode)
		})
	}
}

func TestSeedBalance(t *testing.T) {
	stub, server := bankstub.Start(t)
	client := webclient.New(bankstub.ClientConfig(t, server), zerolog.Nop())
	g := fixture.NewGenerator()
	ctx := context.Background()

	res, err := client.Post(ctx, "/users", g.ValidUser())
	require.NoError(t, err)

	var owner domain.User
	require.NoError(t, res.Decode(&owner))

	res, err = client.Post(ctx, "/accounts", g.SavingsAccount(owner.ID))
	require.NoError(t, err)

	var account domain.Account
	require.NoError(t, res.Decode(&account))

	seeded := decimal.RequireFromString("9999.99")
	stub.SeedBalance(account.ID, seeded)

	res, err = client.Get(ctx, "/accounts/"+idString(account.ID))
	require.NoError(t, err)

	var fetched domain.Account
	require.NoError(t, res.Decode(&fetched))
	require.True(t, fetched.Balance.Equal(seeded),
		"balance: got %s, want %s", fetched.Balance, seeded)
}

func TestTransferMovesBalance(t *testing.T) {
	stub, server := bankstub.Start(t)
	client := webclient.New(bankstub.ClientConfig(t, server), zerolog.Nop())
	g := fixture.NewGenerator()
	ctx := context.Background()

	openAccount := func() domain.Account {
		res, err := client.Post(ctx, "/users", g.ValidUser())
		require.NoError(t, err)

		var owner domain.User
		require.NoError(t, res.Decode(&owner))

		res, err = client.Post(ctx, "/accounts", g.SavingsAccount(owner.ID))
		require.NoError(t, err)

		var account domain.Account
		require.NoError(t, res.Decode(&account))

		return account
	}

	from := openAccount()
	to := openAccount()

	stub.SeedBalance(from.ID, decimal.RequireFromString("500.00"))
	stub.SeedBalance(to.ID, decimal.RequireFromString("100.00"))

	res, err := client.Post(ctx, "/transactions",
		g.Transfer(from.ID, to.ID, decimal.RequireFromString("150.00")))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var fromAfter, toAfter domain.Account

	res, err = client.Get(ctx, "/accounts/"+idString(from.ID))
	require.NoError(t, err)
	require.NoError(t, res.Decode(&fromAfter))

	res, err = client.Get(ctx, "/accounts/"+idString(to.ID))
	require.NoError(t, err)
	require.NoError(t, res.Decode(&toAfter))

	require.True(t, fromAfter.Balance.Equal(decimal.RequireFromString("350.00")),
		"source balance after transfer: %s", fromAfter.Balance)
	require.True(t, toAfter.Balance.Equal(decimal.RequireFromString("250.00")),
		"destination balance after transfer: %s", toAfter.Balance)
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
