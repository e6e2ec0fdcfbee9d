package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/renilson-medeiros/lugo/app/controllers"
	"github.com/renilson-medeiros/lugo/internal/pkg/middleware"
	"github.com/renilson-medeiros/lugo/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Post("/register", controllers.HandleAuthRegister)
	app.Post("/login", controllers.HandleAuthLogin)
	app.Post("/logout", controllers.HandleAuthLogout)

	// Gateway callbacks authenticate with their own token header, never with
	// a session.
	app.Post("/api/webhooks/asaas", controllers.HandleAsaasWebhook)

	app.Get("/up", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
