package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ongod-gadgets/storefront/auth"
)

func newProtectedApp(tokens auth.TokenService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return c.Status(richErr.Code).JSON(fiber.Map{"error": richErr.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Get("/me", auth.Protected(tokens), func(c *fiber.Ctx) error {
		claims, ok := auth.ClaimsFromCtx(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"username": claims.Username})
	})

	return app
}

func TestProtected(t *testing.T) {
	tokens := newTestTokenService()
	app := newProtectedApp(tokens)

	t.Run("valid bearer token reaches the handler", func(t *testing.T) {
		signed, err := tokens.Sign("alice", "alice@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := auth.NewTokenService(
			[]byte("test-signing-key"),
			-time.Minute,
			"test-issuer",
			[]string{"test:audience"},
			nil,
		)
		signed, err := expired.Sign("alice", "alice@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})
}
