package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ongod-gadgets/storefront/store"
)

type adminController struct {
	users         store.Users
	orders        store.Orders
	notifications store.Notifications
	care          store.CareMessages
}

// ClearAll wipes users, orders, notifications, and care messages. The
// catalog survives, matching the original admin utility.
func (a *adminController) ClearAll(c *fiber.Ctx) error {
	ctx := c.Context()

	if err := a.users.DeleteAll(ctx); err != nil {
		return err
	}
	if err := a.orders.DeleteAll(ctx); err != nil {
		return err
	}
	if err := a.notifications.DeleteAll(ctx); err != nil {
		return err
	}
	if err := a.care.DeleteAll(ctx); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "All users, orders, notifications, and customer care messages deleted.",
	})
}
