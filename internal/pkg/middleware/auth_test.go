package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renilson-medeiros/lugo/internal/pkg/usercontext"
)

// seedContext plants the request-scoped user context the way the
// user-context middleware does, without touching the session store.
func seedContext(userID uint, username string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		loggedIn := userID != 0
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
			UserID:     userID,
			Username:   username,
			IsLoggedIn: loggedIn,
		})
		c.Locals(usercontext.KeyFromProtected, loggedIn)
		return c.Next()
	}
}

func okHandler(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func TestRequireAPISessionAuth(t *testing.T) {
	t.Run("anonymous request gets JSON 401", func(t *testing.T) {
		app := fiber.New()
		app.Get("/guarded", seedContext(0, ""), RequireAPISessionAuth, okHandler)

		resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "login required")
	})

	t.Run("logged-in request passes through", func(t *testing.T) {
		app := fiber.New()
		app.Get("/guarded", seedContext(7, "ana"), RequireAPISessionAuth, okHandler)

		resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRequireEntitledRejectsAnonymous(t *testing.T) {
	// The paywall resolves the profile itself on gated routes; the shared
	// user-context middleware only carries identity. An anonymous request
	// must be stopped before any profile lookup happens.
	app := fiber.New()
	app.Post("/gated", seedContext(0, ""), RequireEntitled, okHandler)

	resp, err := app.Test(httptest.NewRequest("POST", "/gated", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
