package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/renilson-medeiros/lugo/app/models"
	"github.com/renilson-medeiros/lugo/internal/pkg/asaas"
)

// Local precondition failures the orchestrator surfaces before talking to
// the gateway.
var (
	ErrProfileNotFound = errors.New("billing: profile not found")
	ErrMissingCPF      = errors.New("billing: update your profile with a CPF before subscribing")

	// ErrMissingExternalReference rejects webhook payloads without the
	// subscriber correlation key; no mutation happens.
	ErrMissingExternalReference = errors.New("billing: missing externalReference")
)

// Gateway is the slice of the Asaas client the billing service needs.
type Gateway interface {
	GetOrCreateCustomer(ctx context.Context, in asaas.CustomerInput) (*asaas.Customer, error)
	CreatePixPayment(ctx context.Context, in asaas.PaymentInput) (*asaas.PixPaymentResult, error)
}

// Service ties subscriber profiles to gateway charges and reconciles webhook
// events back into entitlement state.
type Service struct {
	repo    Repository
	gateway Gateway
}

// NewService creates a billing service from injected dependencies.
func NewService(repo Repository, gateway Gateway) *Service {
	return &Service{repo: repo, gateway: gateway}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, gateway Gateway) *Service {
	return NewService(NewRepository(db), gateway)
}

// CreatePixCheckout turns "subscriber wants to pay" into a gateway charge.
// Nothing is persisted locally; the charge lives only in the gateway and is
// correlated back by externalReference. No retries, no rollback needed.
func (s *Service) CreatePixCheckout(ctx context.Context, userID uint, now time.Time) (*CheckoutResult, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(user.CPF) == "" {
		return nil, ErrMissingCPF
	}

	customer, err := s.gateway.GetOrCreateCustomer(ctx, asaas.CustomerInput{
		Name:        user.Name,
		CpfCnpj:     user.CPF,
		Email:       user.Email,
		MobilePhone: user.Phone,
	})
	if err != nil {
		return nil, err
	}

	res, err := s.gateway.CreatePixPayment(ctx, asaas.PaymentInput{
		Customer:    customer.ID,
		BillingType: asaas.BillingTypePix,
		Value:       PlanPriceBRL,
		DueDate:     now.AddDate(0, 0, ChargeDueInDays).Format("2006-01-02"),
		Description: PlanName,
		// The only correlation key available to the webhook. Always the
		// subscriber's primary id.
		ExternalReference: strconv.FormatUint(uint64(user.ID), 10),
	})
	if err != nil {
		return nil, err
	}

	out := &CheckoutResult{
		PaymentID:    res.Payment.ID,
		InvoiceURL:   res.Payment.InvoiceURL,
		QRCodeError:  res.QRCodeError,
		ErrorMessage: res.ErrorMessage,
	}
	if !res.QRCodeError {
		pix := res.PixCode
		qr := res.QRCodeImage
		out.PixCode = &pix
		out.QRCode = &qr
	}
	return out, nil
}

// ReconcilePaymentEvent applies a gateway payment event to the subscriber
// record. This is the only path that advances a subscriber out of trial.
// Confirmations are idempotent per payment id: redelivery of an already
// applied payment does not re-extend the window.
func (s *Service) ReconcilePaymentEvent(ctx context.Context, ev PaymentEvent, now time.Time) (Outcome, error) {
	_ = ctx
	event := strings.ToUpper(strings.TrimSpace(ev.Event))

	switch event {
	case EventPaymentConfirmed, EventPaymentReceived:
		user, err := s.subscriberFor(ev)
		if err != nil {
			return OutcomeIgnored, err
		}
		if user == nil {
			return OutcomeIgnored, nil
		}
		if user.SubscriptionStatus == models.SubscriptionStatusActive && user.SubscriptionID == ev.Payment.ID {
			return OutcomeDuplicate, nil
		}
		expiresAt := now.Add(SubscriptionPeriod)
		if err := s.repo.UpdateSubscription(user.ID, models.SubscriptionStatusActive, &expiresAt, ev.Payment.ID); err != nil {
			return OutcomeIgnored, err
		}
		return OutcomeActivated, nil

	case EventPaymentOverdue:
		user, err := s.subscriberFor(ev)
		if err != nil {
			return OutcomeIgnored, err
		}
		// Only the charge backing the current subscription can push it past
		// due; stale charges for older cycles are noise.
		if user == nil || user.SubscriptionStatus != models.SubscriptionStatusActive || user.SubscriptionID != ev.Payment.ID {
			return OutcomeIgnored, nil
		}
		if err := s.repo.UpdateSubscription(user.ID, models.SubscriptionStatusPastDue, nil, user.SubscriptionID); err != nil {
			return OutcomeIgnored, err
		}
		return OutcomePastDue, nil

	case EventPaymentRefunded, EventPaymentChargeback:
		user, err := s.subscriberFor(ev)
		if err != nil {
			return OutcomeIgnored, err
		}
		if user == nil || user.SubscriptionID != ev.Payment.ID {
			return OutcomeIgnored, nil
		}
		if err := s.repo.UpdateSubscription(user.ID, models.SubscriptionStatusCanceled, nil, user.SubscriptionID); err != nil {
			return OutcomeIgnored, err
		}
		return OutcomeCanceled, nil

	default:
		// Unrecognized events are acknowledged and dropped.
		return OutcomeIgnored, nil
	}
}

// subscriberFor resolves the event's externalReference to a local user.
// A missing reference is a malformed payload; an unknown user is silently
// ignored so the gateway stops redelivering.
func (s *Service) subscriberFor(ev PaymentEvent) (*models.User, error) {
	ref := strings.TrimSpace(ev.Payment.ExternalReference)
	if ref == "" {
		return nil, ErrMissingExternalReference
	}
	id, err := strconv.ParseUint(ref, 10, 64)
	if err != nil {
		return nil, ErrMissingExternalReference
	}

	user, err := s.repo.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.BillingWebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("billing: provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.BillingWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		TokenValid:      in.TokenValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("billing: webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

// GetProfileWithRetry polls for a subscriber profile with a bounded retry
// loop, waiting for a just-created record to become visible. It gives up to
// not-found rather than hanging.
func (s *Service) GetProfileWithRetry(ctx context.Context, userID uint, attempts int, interval time.Duration) (*models.User, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		user, err := s.repo.GetUserByID(userID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		lastErr = err

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(interval):
			}
		}
	}
	return nil, lastErr
}
