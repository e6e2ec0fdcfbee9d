package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/renilson-medeiros/lugo/app/models"
	"github.com/renilson-medeiros/lugo/app/repository"
	"github.com/renilson-medeiros/lugo/internal/pkg/alerts"
)

// HandleDashboard aggregates the owner's portfolio numbers and the rent
// reminder list. Alerts are recomputed on every call; "today" moves and
// receipts land continuously, so nothing here is cached.
func HandleDashboard(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	repos := repository.GetGlobalRepositories()
	today := time.Now()
	month := models.ReferenceMonthOf(today)

	propertyCount, err := repos.Property.CountByUserID(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("dashboard property count failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	tenantCount, err := repos.Tenant.CountActiveByUserID(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("dashboard tenant count failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	expectedIncome, err := repos.Tenant.SumActiveRentByUserID(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("dashboard expected income failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	receivedThisMonth, err := repos.Receipt.SumForMonth(userID, month)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("dashboard received sum failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	tenants, err := repos.Tenant.GetActiveByUserID(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("dashboard tenant load failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	paidThisMonth, err := repos.Receipt.TenantIDsWithReceiptInMonth(userID, month)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("dashboard receipt lookup failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(fiber.Map{
		"property_count":      propertyCount,
		"active_tenant_count": tenantCount,
		"expected_income":     expectedIncome,
		"received_this_month": receivedThisMonth,
		"reference_month":     month,
		"alerts":              alerts.Compute(tenants, paidThisMonth, today),
	})
}
