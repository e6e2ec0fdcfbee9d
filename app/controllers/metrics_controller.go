package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/renilson-medeiros/lugo/internal/pkg/metrics/counter"
)

// HandleActivityMetrics reports the platform-wide daily counters kept in
// Redis. It sits behind the same basic auth as the monitor page.
func HandleActivityMetrics(c *fiber.Ctx) error {
	day := time.Now()
	if q := c.Query("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		}
		day = parsed
	}

	payments, err := counter.ConfirmedPaymentsOn(day)
	if err != nil {
		log.Error().Err(err).Msg("failed to read payment counter")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	receipts, err := counter.IssuedReceiptsOn(day)
	if err != nil {
		log.Error().Err(err).Msg("failed to read receipt counter")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(fiber.Map{
		"date":               day.Format("2006-01-02"),
		"payments_confirmed": payments,
		"receipts_issued":    receipts,
	})
}
