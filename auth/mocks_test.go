package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ongod-gadgets/storefront/store"
)

// MockUsers implements store.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*store.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*store.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByUsername(ctx context.Context, username string) (*store.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*store.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Exists(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, user *store.User) (*store.User, error) {
	args := m.Called(ctx, user)
	if created, ok := args.Get(0).(*store.User); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) List(ctx context.Context) ([]*store.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*store.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) DeleteByUsername(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockUsers) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMailDispatcher implements auth.MailDispatcher
type MockMailDispatcher struct {
	mock.Mock
}

func (m *MockMailDispatcher) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}
