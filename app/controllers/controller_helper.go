package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/renilson-medeiros/lugo/internal/pkg/usercontext"
)

const (
	AUTH_KEY  string = "authenticated"
	USER_ID   string = "user_id"
	USER_NAME string = "username"
)

func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// requireUserID resolves the logged-in owner's id or replies 401.
func requireUserID(c *fiber.Ctx) (uint, error) {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn || userCtx.UserID == 0 {
		return 0, jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return userCtx.UserID, nil
}
