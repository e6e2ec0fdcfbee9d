package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/renilson-medeiros/lugo/app/models"
	"github.com/renilson-medeiros/lugo/app/repository"
)

// HandlePropertyList lists the owner's properties.
func HandlePropertyList(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	properties, err := repository.GetGlobalRepositories().Property.GetByUserID(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("property list failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(properties)
}

// HandlePropertyCreate creates a property for the owner.
func HandlePropertyCreate(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var property models.Property
	if err := c.BodyParser(&property); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	property.ID = 0
	property.UserID = userID

	if err := property.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if err := repository.GetGlobalRepositories().Property.Create(&property); err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("property create failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

// HandlePropertyGet returns one of the owner's properties.
func HandlePropertyGet(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	property, err := ownedProperty(c, userID)
	if err != nil {
		return err
	}
	return c.JSON(property)
}

// HandlePropertyUpdate updates one of the owner's properties.
func HandlePropertyUpdate(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	property, err := ownedProperty(c, userID)
	if err != nil {
		return err
	}

	var input models.Property
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.ID = property.ID
	input.UserID = userID
	input.CreatedAt = property.CreatedAt

	if err := input.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if err := repository.GetGlobalRepositories().Property.Update(&input); err != nil {
		log.Error().Err(err).Uint("property_id", property.ID).Msg("property update failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(input)
}

// HandlePropertyDelete removes a property that has no tenants attached.
func HandlePropertyDelete(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	property, err := ownedProperty(c, userID)
	if err != nil {
		return err
	}

	repos := repository.GetGlobalRepositories()
	tenantCount, err := repos.Tenant.CountByPropertyID(property.ID)
	if err != nil {
		log.Error().Err(err).Uint("property_id", property.ID).Msg("property tenant count failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if tenantCount > 0 {
		return jsonError(c, fiber.StatusConflict, "Property still has tenants")
	}

	if err := repos.Property.Delete(property.ID); err != nil {
		log.Error().Err(err).Uint("property_id", property.ID).Msg("property delete failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func ownedProperty(c *fiber.Ctx, userID uint) (*models.Property, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, jsonError(c, fiber.StatusBadRequest, "Invalid property id")
	}

	property, err := repository.GetGlobalRepositories().Property.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jsonError(c, fiber.StatusNotFound, "Property not found")
		}
		log.Error().Err(err).Int("property_id", id).Msg("property lookup failed")
		return nil, jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if property.UserID != userID {
		return nil, jsonError(c, fiber.StatusNotFound, "Property not found")
	}
	return property, nil
}
