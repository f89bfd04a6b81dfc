package auth_test

import (
	"context"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ongod-gadgets/storefront/auth"
	"github.com/ongod-gadgets/storefront/store"
)

func newTestTokenService() auth.TokenService {
	return auth.NewTokenService(
		[]byte("test-signing-key"),
		time.Hour,
		"test-issuer",
		[]string{"test:audience"},
		zap.NewNop(),
	)
}

var errUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound)

func TestSessionIssuerLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	alice := &store.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		State:        "Lagos",
		Area:         "Ikeja",
		Street:       "12 Allen Avenue",
	}

	t.Run("issues a token with the profile fields", func(t *testing.T) {
		users := new(MockUsers)
		users.On("GetByEmail", ctx, "alice@example.com").Return(alice, nil).Once()

		issuer := auth.NewSessionIssuer(users, newTestTokenService(), zap.NewNop())

		result, err := issuer.Login(ctx, "Alice@Example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "alice", result.Username)
		assert.Equal(t, "alice@example.com", result.Email)
		assert.Equal(t, "Lagos", result.State)

		claims, err := newTestTokenService().Validate(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, "alice@example.com", claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUsers)
		users.On("GetByEmail", ctx, "alice@example.com").Return(alice, nil).Once()

		issuer := auth.NewSessionIssuer(users, newTestTokenService(), zap.NewNop())

		result, err := issuer.Login(ctx, "alice@example.com", "wrong-password")
		assert.Nil(t, result)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(MockUsers)
		users.On("GetByEmail", ctx, "ghost@example.com").
			Return(nil, errUserNotFound).Once()

		issuer := auth.NewSessionIssuer(users, newTestTokenService(), zap.NewNop())

		result, err := issuer.Login(ctx, "ghost@example.com", "password123")
		assert.Nil(t, result)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		users := new(MockUsers)
		users.On("GetByEmail", ctx, "alice@example.com").Return(alice, nil).Once()
		users.On("GetByEmail", ctx, "ghost@example.com").
			Return(nil, errUserNotFound).Once()

		issuer := auth.NewSessionIssuer(users, newTestTokenService(), zap.NewNop())

		_, wrongPassword := issuer.Login(ctx, "alice@example.com", "wrong-password")
		_, unknownEmail := issuer.Login(ctx, "ghost@example.com", "password123")

		assert.EqualError(t, wrongPassword, unknownEmail.Error())
	})
}
