// Package userapi provides the user facade over the banking service HTTP surface.
package userapi

import (
	"context"
	"fmt"

	"github.com/go-petr/bank-e2e/internal/domain"
	"github.com/go-petr/bank-e2e/internal/webclient"
	"github.com/rs/zerolog"
)

// Service translates user domain actions into single HTTP calls.
//
// Operations never assert on the response. Expect-success and
// expect-failure paths share the same facade.
type Service struct {
	client *webclient.Client
	logger zerolog.Logger
}

// New returns the user facade.
func New(client *webclient.Client, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Create creates a user.
func (s *Service) Create(ctx context.Context, params domain.CreateUserParams) (*webclient.Envelope, error) {
	s.logger.Info().Str("username", params.Username).Msg("creating user")
	return s.client.Post(ctx, "/users", params)
}

// GetByID fetches a user by its server-assigned id.
func (s *Service) GetByID(ctx context.Context, id int64) (*webclient.Envelope, error) {
	s.logger.Info().Int64("user_id", id).Msg("getting user by id")
	return s.client.Get(ctx, fmt.Sprintf("/users/%d", id))
}

// List fetches all users.
func (s *Service) List(ctx context.Context) (*webclient.Envelope, error) {
	s.logger.Info().Msg("getting all users")
	return s.client.Get(ctx, "/users")
}

// Update replaces a user record.
func (s *Service) Update(ctx context.Context, id int64, params domain.CreateUserParams) (*webclient.Envelope, error) {
	s.logger.Info().Int64("user_id", id).Msg("updating user")
	return s.client.Put(ctx, fmt.Sprintf("/users/%d", id), params)
}

// Delete deletes a user by id.
func (s *Service) Delete(ctx context.Context, id int64) (*webclient.Envelope, error) {
	s.logger.Info().Int64("user_id", id).Msg("deleting user")
	return s.client.Delete(ctx, fmt.Sprintf("/users/%d", id))
}

// GetByUsername fetches a user by username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*webclient.Envelope, error) {
	s.logger.Info().Str("username", username).Msg("getting user by username")
	return s.client.Get(ctx, "/users/username/"+username)
}
