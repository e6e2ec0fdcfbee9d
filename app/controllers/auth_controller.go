package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/renilson-medeiros/lugo/app/models"
	"github.com/renilson-medeiros/lugo/app/repository"
	"github.com/renilson-medeiros/lugo/internal/pkg/session"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	CPF      string `json:"cpf"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAuthRegister creates an owner account with a fresh trial window.
func HandleAuthRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	userRepo := repository.GetGlobalRepositories().User
	if existing, err := userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email))); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "E-mail already registered")
	}

	user, err := models.CreateUser(req.Name, strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	user.CPF = strings.TrimSpace(req.CPF)
	user.Phone = strings.TrimSpace(req.Phone)

	if err := userRepo.Create(user); err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return jsonError(c, fiber.StatusInternalServerError, "Could not create account")
	}

	if err := startSession(c, user); err != nil {
		log.Error().Err(err).Msg("failed to start session after register")
		return jsonError(c, fiber.StatusInternalServerError, "Could not start session")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleAuthLogin authenticates an owner and opens a session.
func HandleAuthLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	userRepo := repository.GetGlobalRepositories().User
	user, err := userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "Invalid e-mail or password")
		}
		log.Error().Err(err).Msg("login lookup failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if !models.CheckPasswordHash(req.Password, user.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "Invalid e-mail or password")
	}

	if err := startSession(c, user); err != nil {
		log.Error().Err(err).Msg("failed to start session after login")
		return jsonError(c, fiber.StatusInternalServerError, "Could not start session")
	}

	if err := userRepo.UpdateLastLogin(user.ID, time.Now()); err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to stamp last login")
	}

	return c.JSON(user)
}

// HandleAuthLogout destroys the session.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Could not load session")
	}
	if err := sess.Destroy(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Could not destroy session")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func startSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Name)

	return sess.Save()
}
