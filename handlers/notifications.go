package handlers

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/ongod-gadgets/storefront/store"
)

type notificationsController struct {
	notifications store.Notifications
}

// List returns every notification, or only those addressed to ?user=
// (matched on username or email).
func (n *notificationsController) List(c *fiber.Ctx) error {
	if user := c.Query("user"); user != "" {
		notifications, err := n.notifications.ListForUser(c.Context(), user)
		if err != nil {
			return err
		}
		return c.JSON(notifications)
	}

	notifications, err := n.notifications.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(notifications)
}

// NotificationRequest payload
type NotificationRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// Validate will run validation rules
func (r NotificationRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Message, validation.Required),
		)
	}, "Missing notification message")
}

func (n *notificationsController) Create(c *fiber.Ctx) error {
	payload := new(NotificationRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("failed to parse notification payload")
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	if _, err := n.notifications.Create(c.Context(), &store.Notification{
		Username: payload.Username,
		Email:    payload.Email,
		Title:    payload.Title,
		Message:  payload.Message,
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}
