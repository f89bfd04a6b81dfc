package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	"go.uber.org/zap"

	"github.com/ongod-gadgets/storefront/store"
)

// dummyHash keeps the unknown-email path as expensive as a real compare
// so login timing does not reveal whether the email exists.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// LoginResult is what a successful login returns: the signed token plus
// the public profile fields the storefront renders.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	State    string `json:"state"`
	Area     string `json:"area"`
	Street   string `json:"street"`
}

// SessionIssuer validates credentials and issues session tokens.
type SessionIssuer struct {
	users  store.Users
	tokens TokenService
	logger *zap.Logger
}

// NewSessionIssuer creates a SessionIssuer.
func NewSessionIssuer(users store.Users, tokens TokenService, logger *zap.Logger) *SessionIssuer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionIssuer{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login verifies the password against the stored hash and issues a
// signed token. Unknown email and wrong password both surface the same
// generic failure.
func (s *SessionIssuer) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.IsNotFound(err) {
			_ = ComparePasswordAndHash(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user during login")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.logger.Info("login rejected", zap.String("email", user.Email))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", zap.String("username", user.Username))

	return &LoginResult{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		State:    user.State,
		Area:     user.Area,
		Street:   user.Street,
	}, nil
}
