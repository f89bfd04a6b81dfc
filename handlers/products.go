package handlers

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/ongod-gadgets/storefront/store"
)

type productsController struct {
	products store.Products
}

func (p *productsController) List(c *fiber.Ctx) error {
	products, err := p.products.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// AddProductRequest payload
type AddProductRequest struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// Validate will run validation rules
func (r AddProductRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Name, validation.Required),
			validation.Field(&r.Price, validation.Required, validation.Min(int64(1))),
			validation.Field(&r.Category, validation.Required),
			validation.Field(&r.Image, validation.Required),
		)
	}, "Missing product fields")
}

func (p *productsController) Create(c *fiber.Ctx) error {
	payload := new(AddProductRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("failed to parse product payload")
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	product, err := p.products.Create(c.Context(), &store.Product{
		Name:     payload.Name,
		Price:    payload.Price,
		Category: payload.Category,
		Image:    payload.Image,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "product": product})
}

// UpdatePriceRequest payload
type UpdatePriceRequest struct {
	Price *int64 `json:"price"`
}

func (p *productsController) UpdatePrice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest("invalid product id")
	}

	payload := new(UpdatePriceRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("failed to parse price payload")
	}
	if payload.Price == nil || *payload.Price < 0 {
		return badRequest("invalid price")
	}

	product, err := p.products.UpdatePrice(c.Context(), id, *payload.Price)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "product": product})
}
