package auth

import (
	"github.com/goliatone/go-errors"
)

const (
	textCodeUserExists         = "USER_EXISTS"
	textCodePendingNotFound    = "PENDING_NOT_FOUND"
	textCodeCodeExpired        = "CODE_EXPIRED"
	textCodeCodeMismatch       = "CODE_MISMATCH"
	textCodeInvalidCredentials = "INVALID_CREDENTIALS"
	textCodeMailDelivery       = "MAIL_DELIVERY"
	textCodeTokenExpired       = "TOKEN_EXPIRED"
	textCodeTokenMalformed     = "TOKEN_MALFORMED"
)

// ErrUserExists is returned when a registration targets a username or
// email that already belongs to a verified account.
var ErrUserExists = errors.New("an account with that username or email already exists", errors.CategoryConflict).
	WithTextCode(textCodeUserExists).
	WithCode(errors.CodeConflict)

// ErrNoPendingRegistration is returned for resend/verify calls with no
// registration in flight for the email.
var ErrNoPendingRegistration = errors.New("no pending registration for this email", errors.CategoryNotFound).
	WithTextCode(textCodePendingNotFound).
	WithCode(errors.CodeNotFound)

// ErrCodeExpired is returned when the verification window has closed.
// The stale pending record is deleted as a side effect, so the client
// must register again.
var ErrCodeExpired = errors.New("verification code expired, please register again", errors.CategoryBadInput).
	WithTextCode(textCodeCodeExpired).
	WithCode(errors.CodeBadRequest)

// ErrCodeMismatch is returned when the submitted code does not match the
// one that was dispatched.
var ErrCodeMismatch = errors.New("invalid verification code", errors.CategoryBadInput).
	WithTextCode(textCodeCodeMismatch).
	WithCode(errors.CodeBadRequest)

// ErrInvalidCredentials is the single login failure. The message must not
// reveal whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode(textCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrMailDelivery is returned when the mail collaborator fails. The
// pending record survives, so the client can ask for a resend.
var ErrMailDelivery = errors.New("failed to send verification email", errors.CategoryOperation).
	WithTextCode(textCodeMailDelivery).
	WithCode(errors.CodeInternal)

// ErrTokenExpired is returned for bearer tokens past their expiry.
var ErrTokenExpired = errors.New("authentication token expired", errors.CategoryAuth).
	WithTextCode(textCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for bearer tokens that fail to parse or
// verify.
var ErrTokenMalformed = errors.New("invalid authentication token", errors.CategoryAuth).
	WithTextCode(textCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt.
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)
