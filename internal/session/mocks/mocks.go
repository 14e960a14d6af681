// Package mocks provides testify mocks for session collaborators.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/bugdeck/internal/api"
)

// AuthClient is a mock for session.AuthClient.
type AuthClient struct {
	mock.Mock
}

func (m *AuthClient) Login(ctx context.Context, email, password string) (*api.TokenPairResponse, error) {
	args := m.Called(ctx, email, password)
	if tokens, ok := args.Get(0).(*api.TokenPairResponse); ok {
		return tokens, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthClient) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*api.RegisterResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthClient) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *AuthClient) CurrentUser(ctx context.Context) (*api.User, error) {
	args := m.Called(ctx)
	if user, ok := args.Get(0).(*api.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}
