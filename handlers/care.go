package handlers

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/ongod-gadgets/storefront/auth"
	"github.com/ongod-gadgets/storefront/store"
)

type careController struct {
	care  store.CareMessages
	users store.Users
}

func (cc *careController) List(c *fiber.Ctx) error {
	msgs, err := cc.care.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(msgs)
}

func (cc *careController) ListForUser(c *fiber.Ctx) error {
	msgs, err := cc.care.ListByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(msgs)
}

// CareMessageRequest payload
type CareMessageRequest struct {
	Text string `json:"text"`
}

// Validate will run validation rules
func (r CareMessageRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Text, validation.Required),
		)
	}, "Missing message text")
}

// Create posts a chat message from the authenticated user. The sender
// identity comes from the session token.
func (cc *careController) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromCtx(c)
	if !ok {
		return auth.ErrTokenMalformed
	}

	payload := new(CareMessageRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("failed to parse message payload")
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	// The account may have been deleted since the token was issued.
	if _, err := cc.users.GetByUsername(c.Context(), claims.Username); err != nil {
		if errors.IsNotFound(err) {
			return errors.New("you must be registered to use customer care", errors.CategoryAuthz).
				WithCode(errors.CodeForbidden)
		}
		return err
	}

	if _, err := cc.care.Create(c.Context(), &store.CareMessage{
		From:     store.CareSenderUser,
		Text:     payload.Text,
		Username: claims.Username,
		Email:    claims.Email,
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

// CareReplyRequest payload
type CareReplyRequest struct {
	Text     string `json:"text"`
	Username string `json:"username"`
}

// Validate will run validation rules
func (r CareReplyRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Text, validation.Required),
			validation.Field(&r.Username, validation.Required),
		)
	}, "Missing text or username")
}

// Reply lets the admin panel answer a user. The email threads back from
// the user's most recent message.
func (cc *careController) Reply(c *fiber.Ctx) error {
	payload := new(CareReplyRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("failed to parse reply payload")
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	email, err := cc.care.LastEmailFor(c.Context(), payload.Username)
	if err != nil {
		return err
	}

	if _, err := cc.care.Create(c.Context(), &store.CareMessage{
		From:     store.CareSenderAdmin,
		Text:     payload.Text,
		Username: payload.Username,
		Email:    email,
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}
