package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ongod-gadgets/storefront/auth"
	"github.com/ongod-gadgets/storefront/store"
)

var errSMTPDown = goerrors.New("connection refused", goerrors.CategoryOperation)

func fixedCode(code string) func() (string, error) {
	return func() (string, error) { return code, nil }
}

func validRegistration() auth.Registration {
	return auth.Registration{
		Username: "alice",
		Password: "password123",
		Email:    "Alice@Example.com",
		Phone:    "+2348012345678",
		State:    "Lagos",
		Area:     "Ikeja",
		Street:   "12 Allen Avenue",
	}
}

func TestRegistrarBegin(t *testing.T) {
	ctx := context.Background()

	t.Run("parks a pending record and dispatches the code", func(t *testing.T) {
		users := new(MockUsers)
		mail := new(MockMailDispatcher)
		pending := store.NewPendingMemory()

		users.On("Exists", ctx, "alice", "alice@example.com").Return(false, nil).Once()
		mail.On("Send", ctx, "alice@example.com", mock.Anything, mock.Anything).Return(nil).Once()

		registrar := auth.NewRegistrar(users, pending, mail,
			auth.WithCodeGenerator(fixedCode("123456")),
		)

		err := registrar.Begin(ctx, validRegistration())
		require.NoError(t, err)

		record, err := pending.Get(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "123456", record.Code)
		assert.Equal(t, "alice", record.Username)
		// The stored secret is a bcrypt hash, not the submitted password.
		assert.NotEqual(t, "password123", record.PasswordHash)
		assert.NoError(t, auth.ComparePasswordAndHash("password123", record.PasswordHash))

		users.AssertExpectations(t)
		mail.AssertExpectations(t)
	})

	t.Run("rejects an invalid payload before touching the stores", func(t *testing.T) {
		users := new(MockUsers)
		mail := new(MockMailDispatcher)
		pending := store.NewPendingMemory()

		registrar := auth.NewRegistrar(users, pending, mail)

		reg := validRegistration()
		reg.Email = "not-an-email"
		reg.Password = "tiny"

		err := registrar.Begin(ctx, reg)
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryValidation, richErr.Category)
		assert.Contains(t, richErr.ValidationMap(), "email")
		assert.Contains(t, richErr.ValidationMap(), "password")

		users.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a taken identity without parking a record", func(t *testing.T) {
		users := new(MockUsers)
		mail := new(MockMailDispatcher)
		pending := store.NewPendingMemory()

		users.On("Exists", ctx, "alice", "alice@example.com").Return(true, nil).Once()

		registrar := auth.NewRegistrar(users, pending, mail)

		err := registrar.Begin(ctx, validRegistration())
		assert.ErrorIs(t, err, auth.ErrUserExists)

		_, err = pending.Get(ctx, "alice@example.com")
		assert.True(t, goerrors.IsNotFound(err))
		mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delivery failure leaves the record in place for a resend", func(t *testing.T) {
		users := new(MockUsers)
		mail := new(MockMailDispatcher)
		pending := store.NewPendingMemory()

		users.On("Exists", ctx, "alice", "alice@example.com").Return(false, nil).Once()
		mail.On("Send", ctx, "alice@example.com", mock.Anything, mock.Anything).
			Return(errSMTPDown).Once()

		registrar := auth.NewRegistrar(users, pending, mail,
			auth.WithCodeGenerator(fixedCode("123456")),
		)

		err := registrar.Begin(ctx, validRegistration())
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, auth.ErrMailDelivery.TextCode, richErr.TextCode)

		record, err := pending.Get(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "123456", record.Code)
	})
}

func TestRegistrarResend(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the code so the earlier one stops matching", func(t *testing.T) {
		users := new(MockUsers)
		mail := new(MockMailDispatcher)
		pending := store.NewPendingMemory()

		users.On("Exists", ctx, "alice", "alice@example.com").Return(false, nil).Once()
		mail.On("Send", ctx, "alice@example.com", mock.Anything, mock.Anything).Return(nil).Twice()

		codes := []string{"111111", "222222"}
		registrar := auth.NewRegistrar(users, pending, mail,
			auth.WithCodeGenerator(func() (string, error) {
				code := codes[0]
				codes = codes[1:]
				return code, nil
			}),
		)

		require.NoError(t, registrar.Begin(ctx, validRegistration()))
		require.NoError(t, registrar.Resend(ctx, "alice@example.com"))

		_, err := registrar.Verify(ctx, "alice@example.com", "111111")
		assert.ErrorIs(t, err, auth.ErrCodeMismatch)

		users.On("Create", ctx, mock.Anything).
			Return(&store.User{Username: "alice", Email: "alice@example.com"}, nil).Once()

		user, err := registrar.Verify(ctx, "alice@example.com", "222222")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("extends the expiry window", func(t *testing.T) {
		users := new(MockUsers)
		mail := new(MockMailDispatcher)
		pending := store.NewPendingMemory()

		users.On("Exists", ctx, "alice", "alice@example.com").Return(false, nil).Once()
		mail.On("Send", ctx, "alice@example.com", mock.Anything, mock.Anything).Return(nil).Twice()

		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		registrar := auth.NewRegistrar(users, pending, mail,
			auth.WithClock(func() time.Time { return now }),
			auth.WithCodeTTL(15*time.Minute),
		)

		require.NoError(t, registrar.Begin(ctx, validRegistration()))

		// Resend ten minutes in; the window restarts from the resend.
		now = now.Add(10 * time.Minute)
		require.NoError(t, registrar.Resend(ctx, "alice@example.com"))

		record, err := pending.Get(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, now.Add(15*time.Minute), record.ExpiresAt)
	})

	t.Run("resend mail announces the new code", func(t *testing.T) {
		users := new(MockUsers)
		mail := new(MockMailDispatcher)
		pending := store.NewPendingMemory()

		users.On("Exists", ctx, "alice", "alice@example.com").Return(false, nil).Once()
		mail.On("Send", ctx, "alice@example.com",
			mock.MatchedBy(func(subject string) bool { return !strings.Contains(subject, "(Resent)") }),
			mock.MatchedBy(func(body string) bool { return strings.Contains(body, "Your verification code is") }),
		).Return(nil).Once()
		mail.On("Send", ctx, "alice@example.com",
			mock.MatchedBy(func(subject string) bool { return strings.Contains(subject, "(Resent)") }),
			mock.MatchedBy(func(body string) bool { return strings.Contains(body, "Your new verification code is") }),
		).Return(nil).Once()

		registrar := auth.NewRegistrar(users, pending, mail)

		require.NoError(t, registrar.Begin(ctx, validRegistration()))
		require.NoError(t, registrar.Resend(ctx, "alice@example.com"))

		mail.AssertExpectations(t)
	})

	t.Run("fails when no registration is in flight", func(t *testing.T) {
		users := new(MockUsers)
		mail := new(MockMailDispatcher)

		registrar := auth.NewRegistrar(users, store.NewPendingMemory(), mail)

		err := registrar.Resend(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, auth.ErrNoPendingRegistration)
		mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRegistrarVerify(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*auth.Registrar, *MockUsers, store.PendingRegistrations, *time.Time) {
		t.Helper()

		users := new(MockUsers)
		mail := new(MockMailDispatcher)
		pending := store.NewPendingMemory()
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

		users.On("Exists", ctx, "alice", "alice@example.com").Return(false, nil).Once()
		mail.On("Send", ctx, "alice@example.com", mock.Anything, mock.Anything).Return(nil).Once()

		registrar := auth.NewRegistrar(users, pending, mail,
			auth.WithCodeGenerator(fixedCode("123456")),
			auth.WithClock(func() time.Time { return now }),
		)

		require.NoError(t, registrar.Begin(ctx, validRegistration()))
		return registrar, users, pending, &now
	}

	t.Run("promotes the record into a user exactly once", func(t *testing.T) {
		registrar, users, pending, _ := setup(t)

		users.On("Create", ctx, mock.MatchedBy(func(u *store.User) bool {
			return u.Username == "alice" && u.Email == "alice@example.com"
		})).Return(&store.User{Username: "alice", Email: "alice@example.com"}, nil).Once()

		user, err := registrar.Verify(ctx, "alice@example.com", "123456")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)

		// The record is consumed; a replay finds nothing.
		_, err = pending.Get(ctx, "alice@example.com")
		assert.True(t, goerrors.IsNotFound(err))

		_, err = registrar.Verify(ctx, "alice@example.com", "123456")
		assert.ErrorIs(t, err, auth.ErrNoPendingRegistration)

		users.AssertExpectations(t)
	})

	t.Run("wrong code is rejected and the record survives", func(t *testing.T) {
		registrar, users, pending, _ := setup(t)

		_, err := registrar.Verify(ctx, "alice@example.com", "654321")
		assert.ErrorIs(t, err, auth.ErrCodeMismatch)

		_, err = pending.Get(ctx, "alice@example.com")
		assert.NoError(t, err)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("expired code is rejected and the record is dropped", func(t *testing.T) {
		registrar, users, pending, now := setup(t)

		*now = now.Add(15*time.Minute + time.Second)

		_, err := registrar.Verify(ctx, "alice@example.com", "123456")
		assert.ErrorIs(t, err, auth.ErrCodeExpired)

		_, err = pending.Get(ctx, "alice@example.com")
		assert.True(t, goerrors.IsNotFound(err))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("code is still valid at the window boundary", func(t *testing.T) {
		registrar, users, _, now := setup(t)

		*now = now.Add(15 * time.Minute)

		users.On("Create", ctx, mock.Anything).
			Return(&store.User{Username: "alice", Email: "alice@example.com"}, nil).Once()

		_, err := registrar.Verify(ctx, "alice@example.com", "123456")
		assert.NoError(t, err)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		registrar, users, _, _ := setup(t)

		users.On("Create", ctx, mock.Anything).
			Return(&store.User{Username: "alice", Email: "alice@example.com"}, nil).Once()

		_, err := registrar.Verify(ctx, "ALICE@example.com", "123456")
		assert.NoError(t, err)
	})
}
