package handlers

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/ongod-gadgets/storefront/auth"
	"github.com/ongod-gadgets/storefront/store"
)

type accountController struct {
	registrar *auth.Registrar
	sessions  *auth.SessionIssuer
	users     store.Users
}

// Register starts the verification handshake: a pending record is
// parked and the code goes out by email.
func (a *accountController) Register(c *fiber.Ctx) error {
	payload := new(auth.Registration)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("failed to parse registration payload")
	}

	if err := a.registrar.Begin(c.Context(), *payload); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Verification code sent to your email. Please check your email and enter the code to complete registration.",
		"phoneMessage": fmt.Sprintf("Verification code sent to phone: %s", payload.Phone),
	})
}

// ResendCodeRequest payload
type ResendCodeRequest struct {
	Email string `json:"email"`
}

// Validate will run validation rules
func (r ResendCodeRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.EmailFormat),
		)
	}, "Invalid resend payload")
}

func (a *accountController) ResendCode(c *fiber.Ctx) error {
	payload := new(ResendCodeRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("failed to parse resend payload")
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	if err := a.registrar.Resend(c.Context(), payload.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Verification code resent to your email.",
	})
}

// VerifyRequest payload
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Validate will run validation rules
func (r VerifyRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.EmailFormat),
			validation.Field(&r.Code, validation.Required, validation.Length(6, 6), is.Digit),
		)
	}, "Invalid verification payload")
}

func (a *accountController) Verify(c *fiber.Ctx) error {
	payload := new(VerifyRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("failed to parse verification payload")
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	if _, err := a.registrar.Verify(c.Context(), payload.Email, payload.Code); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Registration complete. You can now log in.",
	})
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.EmailFormat),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid login payload")
}

// Login answers 401 with a body the frontend reads from the "message"
// field, never revealing which credential was wrong.
func (a *accountController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("failed to parse login payload")
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	result, err := a.sessions.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) && richErr.Category == errors.CategoryAuth {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": richErr.Message})
		}
		return err
	}

	return c.JSON(result)
}

func (a *accountController) List(c *fiber.Ctx) error {
	users, err := a.users.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (a *accountController) Check(c *fiber.Ctx) error {
	username := c.Query("username")
	email := c.Query("email")

	exists, err := a.users.Exists(c.Context(), username, email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"exists": exists})
}

func (a *accountController) Show(c *fiber.Ctx) error {
	user, err := a.users.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (a *accountController) Address(c *fiber.Ctx) error {
	user, err := a.users.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"address": user.FullAddress()})
}

func (a *accountController) Delete(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := a.users.DeleteByUsername(c.Context(), username); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("User %s deleted.", username)})
}

func (a *accountController) DeleteAll(c *fiber.Ctx) error {
	if err := a.users.DeleteAll(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "All users deleted."})
}
