package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/renilson-medeiros/lugo/app/controllers"
	"github.com/renilson-medeiros/lugo/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	v1 := api.Group("/v1", middleware.RequireAPISessionAuth)

	// Billing and the dashboard stay reachable for expired subscribers:
	// the paywall must never block the way back in, and the reminder list
	// is part of the pitch to renew.
	v1.Post("/billing/checkout", controllers.HandleCreateCheckout)
	v1.Get("/billing/status", controllers.HandleBillingStatus)
	v1.Get("/dashboard", controllers.HandleDashboard)

	properties := v1.Group("/properties")
	properties.Get("/", controllers.HandlePropertyList)
	properties.Get("/:id", controllers.HandlePropertyGet)
	properties.Post("/", middleware.RequireEntitled, controllers.HandlePropertyCreate)
	properties.Put("/:id", middleware.RequireEntitled, controllers.HandlePropertyUpdate)
	properties.Delete("/:id", middleware.RequireEntitled, controllers.HandlePropertyDelete)

	tenants := v1.Group("/tenants")
	tenants.Get("/", controllers.HandleTenantList)
	tenants.Get("/:id", controllers.HandleTenantGet)
	tenants.Post("/", middleware.RequireEntitled, controllers.HandleTenantCreate)
	tenants.Put("/:id", middleware.RequireEntitled, controllers.HandleTenantUpdate)
	tenants.Delete("/:id", middleware.RequireEntitled, controllers.HandleTenantDelete)

	receipts := v1.Group("/receipts")
	receipts.Get("/", controllers.HandleReceiptList)
	receipts.Get("/:id", controllers.HandleReceiptGet)
	receipts.Get("/:id/pdf", controllers.HandleReceiptPDF)
	receipts.Post("/", middleware.RequireEntitled, controllers.HandleReceiptCreate)
	receipts.Delete("/:id", middleware.RequireEntitled, controllers.HandleReceiptDelete)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
