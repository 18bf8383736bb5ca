// Package accountapi provides the account facade over the banking service HTTP surface.
package accountapi

import (
	"context"
	"fmt"

	"github.com/go-petr/bank-e2e/internal/domain"
	"github.com/go-petr/bank-e2e/internal/webclient"
	"github.com/rs/zerolog"
)

// Service translates account domain actions into single HTTP calls.
type Service struct {
	client *webclient.Client
	logger zerolog.Logger
}

// New returns the account facade.
func New(client *webclient.Client, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Create creates an account for the user referenced by params.UserID.
func (s *Service) Create(ctx context.Context, params domain.CreateAccountParams) (*webclient.Envelope, error) {
	s.logger.Info().
		Str("account_type", params.AccountType).
		Int64("user_id", params.UserID).
		Msg("creating account")

	return s.client.Post(ctx, "/accounts", params)
}

// GetByID fetches an account by its server-assigned id.
func (s *Service) GetByID(ctx context.Context, id int64) (*webclient.Envelope, error) {
	s.logger.Info().Int64("account_id", id).Msg("getting account by id")
	return s.client.Get(ctx, fmt.Sprintf("/accounts/%d", id))
}

// List fetches all accounts.
func (s *Service) List(ctx context.Context) (*webclient.Envelope, error) {
	s.logger.Info().Msg("getting all accounts")
	return s.client.Get(ctx, "/accounts")
}

// GetByUserID fetches all accounts belonging to a user.
func (s *Service) GetByUserID(ctx context.Context, userID int64) (*webclient.Envelope, error) {
	s.logger.Info().Int64("user_id", userID).Msg("getting accounts by user id")
	return s.client.Get(ctx, fmt.Sprintf("/accounts/user/%d", userID))
}

// Update replaces an account record.
func (s *Service) Update(ctx context.Context, id int64, params domain.CreateAccountParams) (*webclient.Envelope, error) {
	s.logger.Info().Int64("account_id", id).Msg("updating account")
	return s.client.Put(ctx, fmt.Sprintf("/accounts/%d", id), params)
}

// Delete deletes an account by id.
func (s *Service) Delete(ctx context.Context, id int64) (*webclient.Envelope, error) {
	s.logger.Info().Int64("account_id", id).Msg("deleting account")
	return s.client.Delete(ctx, fmt.Sprintf("/accounts/%d", id))
}

// GetByAccountNumber fetches an account by its account number.
func (s *Service) GetByAccountNumber(ctx context.Context, number string) (*webclient.Envelope, error) {
	s.logger.Info().Str("account_number", number).Msg("getting account by number")
	return s.client.Get(ctx, "/accounts/number/"+number)
}
