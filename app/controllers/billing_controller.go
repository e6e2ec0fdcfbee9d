package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/renilson-medeiros/lugo/app/models"
	"github.com/renilson-medeiros/lugo/internal/pkg/asaas"
	"github.com/renilson-medeiros/lugo/internal/pkg/billing"
	"github.com/renilson-medeiros/lugo/internal/pkg/database"
	"github.com/renilson-medeiros/lugo/internal/pkg/entitlement"
	"github.com/renilson-medeiros/lugo/internal/pkg/env"
	"github.com/renilson-medeiros/lugo/internal/pkg/metrics/counter"
)

// newBillingService builds a billing service against the live database and
// gateway. Tests swap it for a service over fakes.
var newBillingService = func() *billing.Service {
	return billing.NewServiceFromDB(database.GetDB(), asaas.NewClientFromEnv())
}

// HandleCreateCheckout creates a PIX charge for the logged-in owner and
// returns the copy-and-paste code plus the QR image.
func HandleCreateCheckout(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	svc := newBillingService()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := svc.CreatePixCheckout(ctx, userID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrProfileNotFound):
			return jsonError(c, fiber.StatusNotFound, "Profile not found")
		case errors.Is(err, billing.ErrMissingCPF):
			return jsonError(c, fiber.StatusUnprocessableEntity, "Add a CPF to your profile before subscribing")
		}
		log.Error().Err(err).Uint("user_id", userID).Msg("pix checkout failed")
		msg := "Unable to create the payment. Please try again."
		var apiErr *asaas.APIError
		switch {
		case asaas.IsUnauthorized(err):
			msg = "Payment gateway rejected the configured credentials"
		case errors.As(err, &apiErr) && apiErr.Description != "":
			msg = apiErr.Description
		}
		return jsonError(c, fiber.StatusInternalServerError, msg)
	}

	return c.JSON(result)
}

// HandleBillingStatus reports the owner's current entitlement state.
func HandleBillingStatus(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	svc := newBillingService()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := svc.GetProfileWithRetry(ctx, userID, 5, 300*time.Millisecond)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Profile not found")
		}
		log.Error().Err(err).Uint("user_id", userID).Msg("billing status lookup failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	now := time.Now()
	return c.JSON(fiber.Map{
		"subscription_status":     user.SubscriptionStatus,
		"subscription_expires_at": user.SubscriptionExpiresAt,
		"entitled":                entitlement.IsEntitled(user, now),
		"days_left":               entitlement.DaysLeft(user, now),
	})
}

// HandleAsaasWebhook ingests gateway payment notifications. Every delivery
// is persisted before any processing so redeliveries short-circuit.
func HandleAsaasWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	token := c.Get("asaas-access-token")
	secret := env.GetEnv("ASAAS_WEBHOOK_TOKEN", "")

	svc := newBillingService()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var ev billing.PaymentEvent
	parseErr := json.Unmarshal(rawBody, &ev)

	tokenValid := billing.VerifyWebhookToken(token, secret)
	created, stored, err := svc.RecordWebhookEvent(ctx, billing.WebhookEventInput{
		Provider:        models.BillingProviderAsaas,
		ProviderEventID: ev.ID,
		EventType:       ev.Event,
		PayloadJSON:     string(rawBody),
		TokenValid:      tokenValid,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to persist webhook event")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !created {
		return c.JSON(fiber.Map{"received": true, "duplicate": true})
	}
	if !tokenValid {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("invalid webhook token"))
		return jsonError(c, fiber.StatusUnauthorized, "Invalid webhook token")
	}
	if parseErr != nil {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, parseErr)
		return jsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	outcome, err := svc.ReconcilePaymentEvent(ctx, ev, time.Now())
	_ = svc.MarkWebhookProcessed(ctx, stored.ID, err)
	if err != nil {
		if errors.Is(err, billing.ErrMissingExternalReference) {
			return jsonError(c, fiber.StatusBadRequest, "Missing externalReference")
		}
		log.Error().Err(err).Str("event", ev.Event).Msg("webhook reconciliation failed")
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if outcome == billing.OutcomeActivated {
		if cerr := counter.AddConfirmedPayment(time.Now()); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to count confirmed payment")
		}
	}

	return c.JSON(fiber.Map{"received": true, "outcome": outcome})
}
