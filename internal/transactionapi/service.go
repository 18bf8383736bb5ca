// Package transactionapi provides the transaction facade over the banking service HTTP surface.
package transactionapi

import (
	"context"
	"fmt"

	"github.com/go-petr/bank-e2e/internal/domain"
	"github.com/go-petr/bank-e2e/internal/webclient"
	"github.com/rs/zerolog"
)

// Service translates transaction domain actions into single HTTP calls.
type Service struct {
	client *webclient.Client
	logger zerolog.Logger
}

// New returns the transaction facade.
func New(client *webclient.Client, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Create performs a transaction.
func (s *Service) Create(ctx context.Context, params domain.CreateTransactionParams) (*webclient.Envelope, error) {
	s.logger.Info().
		Str("transaction_type", params.TransactionType).
		Str("amount", params.Amount.String()).
		Msg("creating transaction")

	return s.client.Post(ctx, "/transactions", params)
}

// GetByID fetches a transaction by its server-assigned id.
func (s *Service) GetByID(ctx context.Context, id int64) (*webclient.Envelope, error) {
	s.logger.Info().Int64("transaction_id", id).Msg("getting transaction by id")
	return s.client.Get(ctx, fmt.Sprintf("/transactions/%d", id))
}

// List fetches all transactions.
func (s *Service) List(ctx context.Context) (*webclient.Envelope, error) {
	s.logger.Info().Msg("getting all transactions")
	return s.client.Get(ctx, "/transactions")
}

// GetByAccountID fetches the transaction history of an account.
func (s *Service) GetByAccountID(ctx context.Context, accountID int64) (*webclient.Envelope, error) {
	s.logger.Info().Int64("account_id", accountID).Msg("getting transactions by account id")
	return s.client.Get(ctx, fmt.Sprintf("/transactions/account/%d", accountID))
}

// GetByReference fetches a transaction by its unique reference string.
func (s *Service) GetByReference(ctx context.Context, reference string) (*webclient.Envelope, error) {
	s.logger.Info().Str("reference", reference).Msg("getting transaction by reference")
	return s.client.Get(ctx, "/transactions/reference/"+reference)
}
