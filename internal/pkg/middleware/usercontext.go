package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/renilson-medeiros/lugo/app/controllers"
	"github.com/renilson-medeiros/lugo/internal/pkg/session"
	"github.com/renilson-medeiros/lugo/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request
// This centralizes user session handling and eliminates code duplication
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return anonymous(c)
	}

	userID := sess.Get(controllers.USER_ID)
	if userID == nil {
		return anonymous(c)
	}
	id, ok := userID.(uint)
	if !ok {
		// Redis round-trips may widen the integer type.
		if f, okf := userID.(float64); okf {
			id = uint(f)
		} else {
			return anonymous(c)
		}
	}

	username := session.GetSessionValue(c, controllers.USER_NAME)

	// Entitlement is deliberately not resolved here: only the paywall
	// middleware needs it, and it loads the full profile on gated routes.
	userCtx := usercontext.UserContext{
		UserID:     id,
		Username:   username,
		IsLoggedIn: true,
	}
	c.Locals(usercontext.KeyUserContext, userCtx)
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, id)
	c.Locals(usercontext.KeyUsername, username)

	return c.Next()
}

func anonymous(c *fiber.Ctx) error {
	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})
	c.Locals(usercontext.KeyFromProtected, false)
	return c.Next()
}
