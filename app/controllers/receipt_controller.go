package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/renilson-medeiros/lugo/app/models"
	"github.com/renilson-medeiros/lugo/app/repository"
	"github.com/renilson-medeiros/lugo/internal/pkg/metrics/counter"
	"github.com/renilson-medeiros/lugo/internal/pkg/receiptpdf"
	"github.com/renilson-medeiros/lugo/internal/pkg/usercontext"
)

type receiptCreateRequest struct {
	TenantID       uint     `json:"tenant_id"`
	ReferenceMonth string   `json:"reference_month"`
	Amount         *float64 `json:"amount"`
}

// HandleReceiptList lists the owner's receipts, most recent first.
func HandleReceiptList(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	receipts, err := repository.GetGlobalRepositories().Receipt.GetByUserID(userID, offset, limit)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("receipt list failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(receipts)
}

// HandleReceiptCreate records a rent payment for a tenant. Recording a
// receipt is what removes the tenant from the month's alert list.
func HandleReceiptCreate(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req receiptCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	repos := repository.GetGlobalRepositories()
	tenant, err := repos.Tenant.GetByID(req.TenantID)
	if err != nil || tenant.UserID != userID {
		return jsonError(c, fiber.StatusUnprocessableEntity, "Tenant not found")
	}

	now := time.Now()
	month := req.ReferenceMonth
	if month == "" {
		month = models.ReferenceMonthOf(now)
	}
	amount := tenant.RentAmount
	if req.Amount != nil {
		amount = *req.Amount
	}

	receipt := models.Receipt{
		UserID:         userID,
		TenantID:       tenant.ID,
		ReferenceMonth: month,
		Amount:         amount,
		Token:          uuid.NewString(),
		IssuedAt:       now,
	}
	if err := receipt.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if err := repos.Receipt.Create(&receipt); err != nil {
		log.Error().Err(err).Uint("tenant_id", tenant.ID).Msg("receipt create failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if cerr := counter.AddIssuedReceipt(now); cerr != nil {
		log.Warn().Err(cerr).Msg("failed to count issued receipt")
	}

	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// HandleReceiptGet returns one of the owner's receipts.
func HandleReceiptGet(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	receipt, err := ownedReceipt(c, userID)
	if err != nil {
		return err
	}
	return c.JSON(receipt)
}

// HandleReceiptDelete removes one of the owner's receipts, putting the
// tenant back into the month's alert arithmetic.
func HandleReceiptDelete(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	receipt, err := ownedReceipt(c, userID)
	if err != nil {
		return err
	}

	if err := repository.GetGlobalRepositories().Receipt.Delete(receipt.ID); err != nil {
		log.Error().Err(err).Uint("receipt_id", receipt.ID).Msg("receipt delete failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleReceiptPDF renders the receipt as a downloadable PDF.
func HandleReceiptPDF(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	receipt, err := ownedReceipt(c, userID)
	if err != nil {
		return err
	}

	out, err := receiptpdf.NewGenerator().Generate(&receiptpdf.ReceiptData{
		Token:          receipt.Token,
		OwnerName:      usercontext.GetUsername(c),
		TenantName:     receipt.Tenant.Name,
		TenantCPF:      receipt.Tenant.CPF,
		PropertyLabel:  receipt.Tenant.Property.Label(),
		ReferenceMonth: receipt.ReferenceMonth,
		Amount:         receipt.Amount,
		IssuedAt:       receipt.IssuedAt,
	})
	if err != nil {
		log.Error().Err(err).Uint("receipt_id", receipt.ID).Msg("receipt pdf render failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="recibo-%s.pdf"`, receipt.Token))
	return c.Send(out)
}

func ownedReceipt(c *fiber.Ctx, userID uint) (*models.Receipt, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, jsonError(c, fiber.StatusBadRequest, "Invalid receipt id")
	}

	receipt, err := repository.GetGlobalRepositories().Receipt.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jsonError(c, fiber.StatusNotFound, "Receipt not found")
		}
		log.Error().Err(err).Int("receipt_id", id).Msg("receipt lookup failed")
		return nil, jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if receipt.UserID != userID {
		return nil, jsonError(c, fiber.StatusNotFound, "Receipt not found")
	}
	return receipt, nil
}
