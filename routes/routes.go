package routes

import (
	"github.com/gofiber/fiber/v2"

	"plastiwood-backend/controllers"
	"plastiwood-backend/middlewares"
	"plastiwood-backend/models"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoint
	api.Post("/login", controllers.Login)

	// Protected endpoints (JWT bearer auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticated())

	// Idempotency guard for mutating methods
	protected.Use(middlewares.Idempotency())

	owner := middlewares.RequireRole(models.RoleOwner)

	protected.Get("/me", controllers.Me)

	// Inventory: reads open, mutations owner-only except stock adjustments
	protected.Get("/inventory", controllers.GetInventory)
	protected.Post("/inventory", owner, controllers.CreateInventoryItem)
	protected.Put("/inventory/:id", owner, controllers.UpdateInventoryItem)
	protected.Patch("/inventory/:id/stock", controllers.UpdateInventoryStock)
	protected.Delete("/inventory/:id", owner, controllers.DeleteInventoryItem)

	// Purchases & suppliers
	protected.Get("/purchases", controllers.GetPurchases)
	protected.Post("/purchases", controllers.CreatePurchase)
	protected.Put("/purchases/:id", controllers.UpdatePurchase)
	protected.Delete("/purchases/:id", owner, controllers.DeletePurchase)
	protected.Get("/purchases/suppliers", controllers.GetSuppliers)
	protected.Delete("/purchases/suppliers/:gstin", owner, controllers.DeleteSupplier)

	// Sales & customers
	protected.Get("/sales", controllers.GetInvoices)
	protected.Post("/sales", controllers.CreateSale)
	protected.Put("/sales/:id", controllers.UpdateInvoice)
	protected.Delete("/sales/:id", owner, controllers.DeleteInvoice)
	protected.Get("/sales/customers", controllers.GetCustomers)
	protected.Delete("/sales/customers/:gstin", owner, controllers.DeleteCustomer)

	// Orders
	protected.Get("/orders", controllers.GetOrders)
	protected.Post("/orders", controllers.CreateOrder)
	protected.Put("/orders/:id", controllers.UpdateOrder)
	protected.Delete("/orders/:id", owner, controllers.DeleteOrder)

	// Company profile
	protected.Get("/company", controllers.GetCompany)
	protected.Put("/company", controllers.UpdateCompany)

	// Users
	protected.Get("/users", owner, controllers.GetUsers)
	protected.Post("/users", owner, controllers.CreateUser)
	protected.Put("/users/:id", controllers.UpdateUser)
	protected.Delete("/users/:id", owner, controllers.DeleteUser)

	// Activity feed
	protected.Get("/activity", controllers.GetActivity)

	// Live collection sync (token via query param)
	app.Get("/ws", controllers.RequireWebSocketUpgrade(), controllers.SyncFeed())

	// Unknown /api paths are a JSON 404.
	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})
}
