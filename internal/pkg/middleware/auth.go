package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/renilson-medeiros/lugo/app/repository"
	"github.com/renilson-medeiros/lugo/internal/pkg/entitlement"
	icuser "github.com/renilson-medeiros/lugo/internal/pkg/usercontext"
)

// RequireAPISessionAuth ensures a logged-in session for API routes and returns JSON 401 instead of redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	v := c.Locals(icuser.KeyFromProtected)
	loggedIn := false
	if b, ok := v.(bool); ok {
		loggedIn = b
	}
	if !loggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	return c.Next()
}

// RequireEntitled is the paywall: it re-checks the subscriber's entitlement
// on every request, so an expired trial locks out immediately without any
// background job flipping rows.
func RequireEntitled(c *fiber.Ctx) error {
	userID := icuser.GetUserID(c)
	if userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}

	user, err := repository.GetGlobalRepositories().User.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}

	if !entitlement.IsEntitled(user, time.Now()) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "subscription_required",
			"message": "your trial or subscription has expired",
		})
	}
	return c.Next()
}
