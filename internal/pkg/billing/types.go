package billing

// Asaas payment event types this application reacts to.
const (
	EventPaymentConfirmed  = "PAYMENT_CONFIRMED"
	EventPaymentReceived   = "PAYMENT_RECEIVED"
	EventPaymentOverdue    = "PAYMENT_OVERDUE"
	EventPaymentRefunded   = "PAYMENT_REFUNDED"
	EventPaymentChargeback = "PAYMENT_CHARGEBACK_REQUESTED"
)

// PaymentEvent is the webhook push from the gateway. ExternalReference is
// the only correlation key back to a subscriber and always carries the
// subscriber's primary id.
type PaymentEvent struct {
	ID      string              `json:"id"`
	Event   string              `json:"event"`
	Payment PaymentEventPayment `json:"payment"`
}

type PaymentEventPayment struct {
	ID                string  `json:"id"`
	Customer          string  `json:"customer"`
	Value             float64 `json:"value"`
	ExternalReference string  `json:"externalReference"`
	Status            string  `json:"status"`
}

// CheckoutResult is returned verbatim to the UI after a PIX charge is
// created. The pix fields are nil when QR retrieval failed; the caller then
// falls back to InvoiceURL.
type CheckoutResult struct {
	PaymentID    string  `json:"paymentId"`
	PixCode      *string `json:"pixCode"`
	QRCode       *string `json:"qrCode"`
	InvoiceURL   string  `json:"invoiceUrl"`
	QRCodeError  bool    `json:"qrCodeError,omitempty"`
	ErrorMessage string  `json:"errorMessage,omitempty"`
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	TokenValid      bool
}

// Outcome describes what a reconciled payment event did to the subscriber
// record.
type Outcome string

const (
	OutcomeActivated Outcome = "activated"
	OutcomePastDue   Outcome = "past_due"
	OutcomeCanceled  Outcome = "canceled"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeIgnored   Outcome = "ignored"
)
