package handlers

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/ongod-gadgets/storefront/auth"
	"github.com/ongod-gadgets/storefront/store"
)

type ordersController struct {
	orders store.Orders
}

func (o *ordersController) List(c *fiber.Ctx) error {
	orders, err := o.orders.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func (o *ordersController) ListForUser(c *fiber.Ctx) error {
	orders, err := o.orders.ListByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// PlaceOrderRequest payload
type PlaceOrderRequest struct {
	Product       string    `json:"product"`
	Price         int64     `json:"price"`
	Status        string    `json:"status"`
	BasePrice     int64     `json:"base_price"`
	PaymentMethod string    `json:"payment_method"`
	OrderType     string    `json:"order_type"`
	Address       string    `json:"address"`
	Image         string    `json:"image"`
	Date          time.Time `json:"date"`
}

// Validate will run validation rules
func (r PlaceOrderRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Product, validation.Required),
			validation.Field(&r.Price, validation.Required, validation.Min(int64(1))),
		)
	}, "Missing order fields")
}

// Create places an order for the authenticated user. The username comes
// from the session token, never from the payload.
func (o *ordersController) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromCtx(c)
	if !ok {
		return auth.ErrTokenMalformed
	}

	payload := new(PlaceOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("failed to parse order payload")
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	order, err := o.orders.Create(c.Context(), &store.Order{
		Username:      claims.Username,
		Product:       payload.Product,
		Price:         payload.Price,
		Status:        payload.Status,
		BasePrice:     payload.BasePrice,
		PaymentMethod: payload.PaymentMethod,
		OrderType:     payload.OrderType,
		Address:       payload.Address,
		Image:         payload.Image,
		Date:          payload.Date,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "id": order.ID})
}

// UpdateOrderRequest payload
type UpdateOrderRequest struct {
	Status string `json:"status"`
}

func (o *ordersController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest("invalid order id")
	}

	payload := new(UpdateOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("failed to parse order payload")
	}
	if payload.Status == "" {
		return badRequest("missing order status")
	}

	order, err := o.orders.UpdateStatus(c.Context(), id, payload.Status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "order": order})
}
