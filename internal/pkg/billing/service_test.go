package billing

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/renilson-medeiros/lugo/app/models"
	"github.com/renilson-medeiros/lugo/internal/pkg/asaas"
)

type fakeRepo struct {
	users map[uint]*models.User

	updates []subscriptionUpdate

	seenEvents map[string]*models.BillingWebhookEvent
	processed  map[uint]string
}

type subscriptionUpdate struct {
	userID         uint
	status         string
	expiresAt      *time.Time
	subscriptionID string
}

func newFakeRepo(users ...*models.User) *fakeRepo {
	r := &fakeRepo{
		users:      map[uint]*models.User{},
		seenEvents: map[string]*models.BillingWebhookEvent{},
		processed:  map[uint]string{},
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) UpdateSubscription(userID uint, status string, expiresAt *time.Time, subscriptionID string) error {
	r.updates = append(r.updates, subscriptionUpdate{userID, status, expiresAt, subscriptionID})
	if u, ok := r.users[userID]; ok {
		u.SubscriptionStatus = status
		u.SubscriptionID = subscriptionID
		if expiresAt != nil {
			u.SubscriptionExpiresAt = expiresAt
		}
	}
	return nil
}

func (r *fakeRepo) CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	key := event.Provider + ":" + event.ProviderEventID
	if existing, ok := r.seenEvents[key]; ok {
		return false, existing, nil
	}
	event.ID = uint(len(r.seenEvents) + 1)
	r.seenEvents[key] = event
	return true, event, nil
}

func (r *fakeRepo) MarkWebhookProcessed(id uint, processingError string) error {
	r.processed[id] = processingError
	return nil
}

type fakeGateway struct {
	customer    *asaas.Customer
	customerErr error

	payments   []asaas.PaymentInput
	result     *asaas.PixPaymentResult
	paymentErr error
}

func (g *fakeGateway) GetOrCreateCustomer(ctx context.Context, in asaas.CustomerInput) (*asaas.Customer, error) {
	if g.customerErr != nil {
		return nil, g.customerErr
	}
	if g.customer != nil {
		return g.customer, nil
	}
	return &asaas.Customer{ID: "cus_test", Name: in.Name, CpfCnpj: in.CpfCnpj}, nil
}

func (g *fakeGateway) CreatePixPayment(ctx context.Context, in asaas.PaymentInput) (*asaas.PixPaymentResult, error) {
	g.payments = append(g.payments, in)
	if g.paymentErr != nil {
		return nil, g.paymentErr
	}
	if g.result != nil {
		return g.result, nil
	}
	return &asaas.PixPaymentResult{
		Payment: asaas.Payment{
			ID:                "pay_test",
			Customer:          in.Customer,
			Value:             in.Value,
			DueDate:           in.DueDate,
			ExternalReference: in.ExternalReference,
			InvoiceURL:        "https://www.asaas.com/i/pay_test",
			Status:            "PENDING",
		},
		PixCode:     "00020126pixcopypaste",
		QRCodeImage: "iVBORw0KGgo=",
	}, nil
}

func testUser(id uint) *models.User {
	return &models.User{
		ID:                 id,
		Name:               "Renilson Medeiros",
		Email:              "renilson@example.com",
		CPF:                "12345678901",
		Phone:              "83999990000",
		SubscriptionStatus: models.SubscriptionStatusTrial,
	}
}

func TestCreatePixCheckout(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("creates charge correlated to the subscriber", func(t *testing.T) {
		repo := newFakeRepo(testUser(42))
		gw := &fakeGateway{}
		svc := NewService(repo, gw)

		res, err := svc.CreatePixCheckout(context.Background(), 42, now)
		assert.NoError(t, err)
		assert.Len(t, gw.payments, 1)

		in := gw.payments[0]
		assert.Equal(t, asaas.BillingTypePix, in.BillingType)
		assert.Equal(t, PlanPriceBRL, in.Value)
		assert.Equal(t, PlanName, in.Description)
		assert.Equal(t, "42", in.ExternalReference)
		assert.Equal(t, "2026-05-13", in.DueDate)

		assert.Equal(t, "pay_test", res.PaymentID)
		assert.False(t, res.QRCodeError)
		if assert.NotNil(t, res.PixCode) {
			assert.Equal(t, "00020126pixcopypaste", *res.PixCode)
		}
		assert.NotNil(t, res.QRCode)
	})

	t.Run("unknown profile", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakeGateway{})
		_, err := svc.CreatePixCheckout(context.Background(), 99, now)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("profile without CPF", func(t *testing.T) {
		user := testUser(7)
		user.CPF = "  "
		svc := NewService(newFakeRepo(user), &fakeGateway{})
		_, err := svc.CreatePixCheckout(context.Background(), 7, now)
		assert.ErrorIs(t, err, ErrMissingCPF)
	})

	t.Run("qr fetch failure keeps the charge usable", func(t *testing.T) {
		gw := &fakeGateway{result: &asaas.PixPaymentResult{
			Payment: asaas.Payment{
				ID:         "pay_noqr",
				InvoiceURL: "https://www.asaas.com/i/pay_noqr",
			},
			QRCodeError:  true,
			ErrorMessage: "QR Code indisponível no momento",
		}}
		svc := NewService(newFakeRepo(testUser(1)), gw)

		res, err := svc.CreatePixCheckout(context.Background(), 1, now)
		assert.NoError(t, err)
		assert.True(t, res.QRCodeError)
		assert.Equal(t, "pay_noqr", res.PaymentID)
		assert.Equal(t, "https://www.asaas.com/i/pay_noqr", res.InvoiceURL)
		assert.Nil(t, res.PixCode)
		assert.Nil(t, res.QRCode)
	})

	t.Run("gateway failure is propagated", func(t *testing.T) {
		gw := &fakeGateway{paymentErr: errors.New("gateway down")}
		svc := NewService(newFakeRepo(testUser(1)), gw)
		_, err := svc.CreatePixCheckout(context.Background(), 1, now)
		assert.Error(t, err)
	})
}

func paymentEvent(event, paymentID string, userID uint) PaymentEvent {
	return PaymentEvent{
		ID:    "evt_" + paymentID,
		Event: event,
		Payment: PaymentEventPayment{
			ID:                paymentID,
			Value:             PlanPriceBRL,
			ExternalReference: strconv.FormatUint(uint64(userID), 10),
			Status:            "CONFIRMED",
		},
	}
}

func TestReconcilePaymentEvent(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("confirmation activates and extends thirty days", func(t *testing.T) {
		repo := newFakeRepo(testUser(42))
		svc := NewService(repo, &fakeGateway{})

		outcome, err := svc.ReconcilePaymentEvent(ctx, paymentEvent(EventPaymentConfirmed, "pay_1", 42), now)
		assert.NoError(t, err)
		assert.Equal(t, OutcomeActivated, outcome)

		if assert.Len(t, repo.updates, 1) {
			up := repo.updates[0]
			assert.Equal(t, models.SubscriptionStatusActive, up.status)
			assert.Equal(t, "pay_1", up.subscriptionID)
			if assert.NotNil(t, up.expiresAt) {
				assert.Equal(t, now.Add(SubscriptionPeriod), *up.expiresAt)
			}
		}
	})

	t.Run("received is treated like confirmed", func(t *testing.T) {
		repo := newFakeRepo(testUser(42))
		svc := NewService(repo, &fakeGateway{})

		outcome, err := svc.ReconcilePaymentEvent(ctx, paymentEvent(EventPaymentReceived, "pay_1", 42), now)
		assert.NoError(t, err)
		assert.Equal(t, OutcomeActivated, outcome)
	})

	t.Run("redelivered confirmation does not re-extend", func(t *testing.T) {
		user := testUser(42)
		user.SubscriptionStatus = models.SubscriptionStatusActive
		user.SubscriptionID = "pay_1"
		repo := newFakeRepo(user)
		svc := NewService(repo, &fakeGateway{})

		outcome, err := svc.ReconcilePaymentEvent(ctx, paymentEvent(EventPaymentConfirmed, "pay_1", 42), now)
		assert.NoError(t, err)
		assert.Equal(t, OutcomeDuplicate, outcome)
		assert.Empty(t, repo.updates)
	})

	t.Run("a new payment id re-extends an active subscription", func(t *testing.T) {
		user := testUser(42)
		user.SubscriptionStatus = models.SubscriptionStatusActive
		user.SubscriptionID = "pay_1"
		repo := newFakeRepo(user)
		svc := NewService(repo, &fakeGateway{})

		outcome, err := svc.ReconcilePaymentEvent(ctx, paymentEvent(EventPaymentConfirmed, "pay_2", 42), now)
		assert.NoError(t, err)
		assert.Equal(t, OutcomeActivated, outcome)
		if assert.Len(t, repo.updates, 1) {
			assert.Equal(t, "pay_2", repo.updates[0].subscriptionID)
		}
	})

	t.Run("missing externalReference is rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakeGateway{})
		ev := paymentEvent(EventPaymentConfirmed, "pay_1", 42)
		ev.Payment.ExternalReference = ""

		_, err := svc.ReconcilePaymentEvent(ctx, ev, now)
		assert.ErrorIs(t, err, ErrMissingExternalReference)
	})

	t.Run("unknown subscriber is ignored", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, &fakeGateway{})

		outcome, err := svc.ReconcilePaymentEvent(ctx, paymentEvent(EventPaymentConfirmed, "pay_1", 999), now)
		assert.NoError(t, err)
		assert.Equal(t, OutcomeIgnored, outcome)
		assert.Empty(t, repo.updates)
	})

	t.Run("overdue on the current charge goes past due without touching expiry", func(t *testing.T) {
		user := testUser(42)
		user.SubscriptionStatus = models.SubscriptionStatusActive
		user.SubscriptionID = "pay_1"
		expires := now.Add(-24 * time.Hour)
		user.SubscriptionExpiresAt = &expires
		repo := newFakeRepo(user)
		svc := NewService(repo, &fakeGateway{})

		outcome, err := svc.ReconcilePaymentEvent(ctx, paymentEvent(EventPaymentOverdue, "pay_1", 42), now)
		assert.NoError(t, err)
		assert.Equal(t, OutcomePastDue, outcome)
		if assert.Len(t, repo.updates, 1) {
			assert.Equal(t, models.SubscriptionStatusPastDue, repo.updates[0].status)
			assert.Nil(t, repo.updates[0].expiresAt)
		}
	})

	t.Run("overdue for a stale charge is ignored", func(t *testing.T) {
		user := testUser(42)
		user.SubscriptionStatus = models.SubscriptionStatusActive
		user.SubscriptionID = "pay_2"
		repo := newFakeRepo(user)
		svc := NewService(repo, &fakeGateway{})

		outcome, err := svc.ReconcilePaymentEvent(ctx, paymentEvent(EventPaymentOverdue, "pay_1", 42), now)
		assert.NoError(t, err)
		assert.Equal(t, OutcomeIgnored, outcome)
		assert.Empty(t, repo.updates)
	})

	t.Run("refund of the current charge cancels", func(t *testing.T) {
		user := testUser(42)
		user.SubscriptionStatus = models.SubscriptionStatusActive
		user.SubscriptionID = "pay_1"
		repo := newFakeRepo(user)
		svc := NewService(repo, &fakeGateway{})

		outcome, err := svc.ReconcilePaymentEvent(ctx, paymentEvent(EventPaymentRefunded, "pay_1", 42), now)
		assert.NoError(t, err)
		assert.Equal(t, OutcomeCanceled, outcome)
	})

	t.Run("unrecognized events are acknowledged and dropped", func(t *testing.T) {
		repo := newFakeRepo(testUser(42))
		svc := NewService(repo, &fakeGateway{})

		outcome, err := svc.ReconcilePaymentEvent(ctx, paymentEvent("PAYMENT_UPDATED", "pay_1", 42), now)
		assert.NoError(t, err)
		assert.Equal(t, OutcomeIgnored, outcome)
		assert.Empty(t, repo.updates)
	})
}

func TestRecordWebhookEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, &fakeGateway{})

	created, event, err := svc.RecordWebhookEvent(ctx, WebhookEventInput{
		Provider:        models.BillingProviderAsaas,
		ProviderEventID: "evt_1",
		EventType:       EventPaymentConfirmed,
		PayloadJSON:     `{"id":"evt_1"}`,
		TokenValid:      true,
	})
	assert.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, event.ID)

	created, dup, err := svc.RecordWebhookEvent(ctx, WebhookEventInput{
		Provider:        models.BillingProviderAsaas,
		ProviderEventID: "evt_1",
		EventType:       EventPaymentConfirmed,
		PayloadJSON:     `{"id":"evt_1"}`,
		TokenValid:      true,
	})
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, event.ID, dup.ID)
}

func TestRecordWebhookEventHashesMissingID(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeGateway{})

	_, event, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{
		Provider:    models.BillingProviderAsaas,
		PayloadJSON: `{"event":"PAYMENT_CONFIRMED"}`,
	})
	assert.NoError(t, err)
	assert.Contains(t, event.ProviderEventID, "hash:")
}

func TestGetProfileWithRetry(t *testing.T) {
	t.Run("gives up to not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), &fakeGateway{})
		_, err := svc.GetProfileWithRetry(context.Background(), 5, 3, time.Millisecond)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("returns the profile when present", func(t *testing.T) {
		svc := NewService(newFakeRepo(testUser(5)), &fakeGateway{})
		user, err := svc.GetProfileWithRetry(context.Background(), 5, 3, time.Millisecond)
		assert.NoError(t, err)
		assert.Equal(t, uint(5), user.ID)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		svc := NewService(newFakeRepo(), &fakeGateway{})
		_, err := svc.GetProfileWithRetry(ctx, 5, 3, 50*time.Millisecond)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
