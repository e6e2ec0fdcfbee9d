package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/renilson-medeiros/lugo/app/models"
	"github.com/renilson-medeiros/lugo/app/repository"
)

// HandleTenantList lists the owner's tenant contracts.
func HandleTenantList(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	tenants, err := repository.GetGlobalRepositories().Tenant.GetByUserID(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("tenant list failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(tenants)
}

// HandleTenantCreate creates a tenant contract on one of the owner's
// properties.
func HandleTenantCreate(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var tenant models.Tenant
	if err := c.BodyParser(&tenant); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	tenant.ID = 0
	tenant.UserID = userID
	if tenant.Status == "" {
		tenant.Status = models.TenantStatusActive
	}

	if err := tenant.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	repos := repository.GetGlobalRepositories()
	property, err := repos.Property.GetByID(tenant.PropertyID)
	if err != nil || property.UserID != userID {
		return jsonError(c, fiber.StatusUnprocessableEntity, "Property not found")
	}

	tenant.Property = models.Property{}
	if err := repos.Tenant.Create(&tenant); err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("tenant create failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// HandleTenantGet returns one of the owner's tenant contracts.
func HandleTenantGet(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	tenant, err := ownedTenant(c, userID)
	if err != nil {
		return err
	}
	return c.JSON(tenant)
}

// HandleTenantUpdate updates one of the owner's tenant contracts.
func HandleTenantUpdate(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	tenant, err := ownedTenant(c, userID)
	if err != nil {
		return err
	}

	var input models.Tenant
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.ID = tenant.ID
	input.UserID = userID
	input.CreatedAt = tenant.CreatedAt
	if input.PropertyID == 0 {
		input.PropertyID = tenant.PropertyID
	}

	if err := input.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	repos := repository.GetGlobalRepositories()
	if input.PropertyID != tenant.PropertyID {
		property, err := repos.Property.GetByID(input.PropertyID)
		if err != nil || property.UserID != userID {
			return jsonError(c, fiber.StatusUnprocessableEntity, "Property not found")
		}
	}

	input.Property = models.Property{}
	if err := repos.Tenant.Update(&input); err != nil {
		log.Error().Err(err).Uint("tenant_id", tenant.ID).Msg("tenant update failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(input)
}

// HandleTenantDelete removes one of the owner's tenant contracts.
func HandleTenantDelete(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	tenant, err := ownedTenant(c, userID)
	if err != nil {
		return err
	}

	if err := repository.GetGlobalRepositories().Tenant.Delete(tenant.ID); err != nil {
		log.Error().Err(err).Uint("tenant_id", tenant.ID).Msg("tenant delete failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func ownedTenant(c *fiber.Ctx, userID uint) (*models.Tenant, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, jsonError(c, fiber.StatusBadRequest, "Invalid tenant id")
	}

	tenant, err := repository.GetGlobalRepositories().Tenant.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jsonError(c, fiber.StatusNotFound, "Tenant not found")
		}
		log.Error().Err(err).Int("tenant_id", id).Msg("tenant lookup failed")
		return nil, jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if tenant.UserID != userID {
		return nil, jsonError(c, fiber.StatusNotFound, "Tenant not found")
	}
	return tenant, nil
}
