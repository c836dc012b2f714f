package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/minatoent/backoffice-api/internal/application/analytics"
	"github.com/minatoent/backoffice-api/internal/application/auth"
	"github.com/minatoent/backoffice-api/internal/application/billing"
	"github.com/minatoent/backoffice-api/internal/application/extraction"
	"github.com/minatoent/backoffice-api/internal/application/inventory"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ExtractionUC *extraction.UseCase
	Registry     *inventory.Registry
	GenerateBill *billing.GenerateBillUseCase
	DashboardUC  *analytics.DashboardUseCase
	BillsDir     string
	JWTSecret    string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.ExtractionUC)
	customers.Post("/search", customerHandler.Search)
	customers.Post("/process", customerHandler.Process)

	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Registry)
	inv.Get("/search", inventoryHandler.Search)
	inv.Get("/:kind/:serial", inventoryHandler.Find)

	bills := protected.Group("/bills")
	billingHandler := NewBillingHandler(deps.GenerateBill, deps.BillsDir)
	bills.Post("/", billingHandler.Create)
	bills.Get("/:filename", billingHandler.Download)

	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
}
