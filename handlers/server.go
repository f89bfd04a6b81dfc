package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ongod-gadgets/storefront/auth"
	"github.com/ongod-gadgets/storefront/store"
)

// Deps are the collaborators the HTTP layer is wired with.
type Deps struct {
	Logger        *zap.Logger
	Registrar     *auth.Registrar
	Sessions      *auth.SessionIssuer
	Tokens        auth.TokenService
	Users         store.Users
	Products      store.Products
	Orders        store.Orders
	Notifications store.Notifications
	Care          store.CareMessages
}

// New assembles the fiber application with every storefront route.
func New(deps Deps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "ongod-storefront",
		ErrorHandler: errorHandler(deps.Logger),
	})

	api := app.Group("/api")
	protected := auth.Protected(deps.Tokens)

	products := &productsController{products: deps.Products}
	api.Get("/products", products.List)
	api.Post("/products/add", products.Create)
	api.Put("/products/:id", products.UpdatePrice)

	notifications := &notificationsController{notifications: deps.Notifications}
	api.Get("/notifications", notifications.List)
	api.Post("/notifications", notifications.Create)

	orders := &ordersController{orders: deps.Orders}
	api.Get("/orders", orders.List)
	api.Get("/orders/user/:username", orders.ListForUser)
	api.Post("/orders", protected, orders.Create)
	api.Put("/orders/:id", orders.UpdateStatus)

	account := &accountController{
		registrar: deps.Registrar,
		sessions:  deps.Sessions,
		users:     deps.Users,
	}
	api.Get("/users", account.List)
	api.Get("/users/check", account.Check)
	api.Post("/users/register", account.Register)
	api.Post("/users/resend-code", account.ResendCode)
	api.Post("/users/verify", account.Verify)
	api.Post("/users/login", account.Login)
	api.Get("/users/:username", account.Show)
	api.Get("/users/:username/address", account.Address)
	api.Delete("/users/:username/delete", account.Delete)
	api.Delete("/users", account.DeleteAll)

	care := &careController{care: deps.Care, users: deps.Users}
	api.Get("/customer-care", care.List)
	api.Get("/customer-care/user/:username", care.ListForUser)
	api.Post("/customer-care", protected, care.Create)
	api.Post("/customer-care/reply", care.Reply)

	admin := &adminController{
		users:         deps.Users,
		orders:        deps.Orders,
		notifications: deps.Notifications,
		care:          deps.Care,
	}
	api.Delete("/admin/clear-all", admin.ClearAll)

	// Unknown routes answer with the same JSON 404 the frontend handles.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Endpoint not found"})
	})

	return app
}
