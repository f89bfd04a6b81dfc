package auth

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"

	"github.com/ongod-gadgets/storefront/store"
)

// MailDispatcher is the collaborator that delivers verification codes.
type MailDispatcher interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Registration is the payload a client submits to begin registering.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	State    string `json:"state"`
	Area     string `json:"area"`
	Street   string `json:"street"`
	Address  string `json:"address"`
}

// Validate will run validation rules
func (r Registration) Validate(phoneRegion string) *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required, validation.Length(2, 100)),
			validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
			validation.Field(&r.Email, validation.Required, is.EmailFormat),
			validation.Field(&r.Phone, validation.Required, validation.By(validatePhone(phoneRegion))),
		)
	}, "Invalid registration payload")
}

func validatePhone(region string) validation.RuleFunc {
	return func(value any) error {
		raw, _ := value.(string)
		num, err := phonenumbers.Parse(raw, region)
		if err != nil {
			return err
		}
		if !phonenumbers.IsValidNumber(num) {
			return errors.New("invalid phone number", errors.CategoryValidation)
		}
		return nil
	}
}

// Registrar drives the two-phase registration flow: a pending record is
// parked under the submitted email until the dispatched code is matched,
// keeping unverified identities out of the username/email namespace.
type Registrar struct {
	users   store.Users
	pending store.PendingRegistrations
	mail    MailDispatcher
	logger  *zap.Logger

	codeTTL     time.Duration
	phoneRegion string
	now         func() time.Time
	newCode     func() (string, error)
}

// RegistrarOption customizes a Registrar.
type RegistrarOption func(*Registrar)

// WithCodeTTL overrides the verification window.
func WithCodeTTL(ttl time.Duration) RegistrarOption {
	return func(r *Registrar) { r.codeTTL = ttl }
}

// WithPhoneRegion sets the default region for phone validation.
func WithPhoneRegion(region string) RegistrarOption {
	return func(r *Registrar) { r.phoneRegion = region }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) RegistrarOption {
	return func(r *Registrar) { r.now = now }
}

// WithCodeGenerator overrides the verification code source.
func WithCodeGenerator(gen func() (string, error)) RegistrarOption {
	return func(r *Registrar) { r.newCode = gen }
}

// WithRegistrarLogger attaches a logger.
func WithRegistrarLogger(logger *zap.Logger) RegistrarOption {
	return func(r *Registrar) { r.logger = logger }
}

// NewRegistrar creates a registration manager.
func NewRegistrar(users store.Users, pending store.PendingRegistrations, mail MailDispatcher, opts ...RegistrarOption) *Registrar {
	r := &Registrar{
		users:       users,
		pending:     pending,
		mail:        mail,
		logger:      zap.NewNop(),
		codeTTL:     15 * time.Minute,
		phoneRegion: "NG",
		now:         time.Now,
		newCode:     GenerateCode,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Begin validates the submission, parks a pending registration under the
// email, and dispatches the verification code. A delivery failure leaves
// the pending record in place so the client can ask for a resend.
func (r *Registrar) Begin(ctx context.Context, reg Registration) error {
	if err := reg.Validate(r.phoneRegion); err != nil {
		return err
	}

	email := normalizeEmail(reg.Email)
	username := strings.TrimSpace(reg.Username)

	exists, err := r.users.Exists(ctx, username, email)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to check existing users")
	}
	if exists {
		return ErrUserExists
	}

	// Hash at submission time; the pending record never sees plaintext.
	hash, err := HashPassword(reg.Password)
	if err != nil {
		return err
	}

	code, err := r.newCode()
	if err != nil {
		return err
	}

	record := &store.PendingRegistration{
		Email:        email,
		Code:         code,
		Username:     username,
		PasswordHash: hash,
		Phone:        reg.Phone,
		State:        reg.State,
		Area:         reg.Area,
		Street:       reg.Street,
		Address:      reg.Address,
		ExpiresAt:    r.now().Add(r.codeTTL),
	}

	if err := r.pending.Put(ctx, record); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to store pending registration")
	}

	if err := r.dispatchCode(ctx, email, code, false); err != nil {
		return err
	}

	r.logger.Info("registration started", zap.String("email", email), zap.String("username", username))
	return nil
}

// Resend regenerates the code and expiry for an in-flight registration,
// invalidating the previously dispatched code.
func (r *Registrar) Resend(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	record, err := r.pending.Get(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return ErrNoPendingRegistration
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to load pending registration")
	}

	code, err := r.newCode()
	if err != nil {
		return err
	}

	record.Code = code
	record.ExpiresAt = r.now().Add(r.codeTTL)

	if err := r.pending.Put(ctx, record); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to refresh pending registration")
	}

	if err := r.dispatchCode(ctx, email, code, true); err != nil {
		return err
	}

	r.logger.Info("verification code resent", zap.String("email", email))
	return nil
}

// Verify matches the submitted code and promotes the pending record into
// a permanent user. The pending record is consumed on success, and a
// stale record is deleted when expiry is detected.
func (r *Registrar) Verify(ctx context.Context, email, code string) (*store.User, error) {
	email = normalizeEmail(email)

	record, err := r.pending.Get(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrNoPendingRegistration
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load pending registration")
	}

	if record.Expired(r.now()) {
		if err := r.pending.Delete(ctx, email); err != nil {
			r.logger.Warn("failed to delete expired pending registration",
				zap.String("email", email), zap.Error(err))
		}
		return nil, ErrCodeExpired
	}

	if !CodeMatches(record.Code, code) {
		return nil, ErrCodeMismatch
	}

	user, err := r.users.Create(ctx, record.User(userID(email)))
	if err != nil {
		return nil, err
	}

	if err := r.pending.Delete(ctx, email); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to consume pending registration")
	}

	r.logger.Info("registration verified", zap.String("email", email), zap.String("username", user.Username))
	return user, nil
}

// userID derives a stable user ID from the email, falling back to a
// random one if derivation fails.
func userID(email string) uuid.UUID {
	if id, err := hashid.NewUUID(email); err == nil {
		return id
	}
	return uuid.New()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *Registrar) dispatchCode(ctx context.Context, email, code string, resend bool) error {
	subject := verificationSubject
	body := verificationBody(code)
	if resend {
		subject = verificationResendSubject
		body = verificationResendBody(code)
	}

	if err := r.mail.Send(ctx, email, subject, body); err != nil {
		r.logger.Error("verification email dispatch failed",
			zap.String("email", email), zap.Error(err))
		return errors.Wrap(err, ErrMailDelivery.Category, ErrMailDelivery.Message).
			WithTextCode(ErrMailDelivery.TextCode).
			WithCode(ErrMailDelivery.Code)
	}

	return nil
}
