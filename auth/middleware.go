package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// ContextKey is where the bearer middleware parks validated claims.
const ContextKey = "session_claims"

const bearerScheme = "Bearer"

// Protected returns middleware that validates the bearer token once per
// request. Handlers read the claims back with ClaimsFromCtx.
func Protected(tokens TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			return err
		}

		c.Locals(ContextKey, claims)
		return c.Next()
	}
}

// ClaimsFromCtx returns the validated claims set by Protected.
func ClaimsFromCtx(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(ContextKey).(*Claims)
	return claims, ok
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing authorization header", errors.CategoryAuth).
			WithTextCode(textCodeTokenMalformed).
			WithCode(errors.CodeUnauthorized)
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) || parts[1] == "" {
		return "", ErrTokenMalformed
	}

	return parts[1], nil
}
