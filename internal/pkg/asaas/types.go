package asaas

// BillingTypePix is the only billing type this application creates charges with.
const BillingTypePix = "PIX"

// Customer mirrors the gateway's customer record. Customers are keyed by
// CPF/CNPJ from this application's point of view and re-queried on every
// charge creation, never cached locally.
type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CpfCnpj     string `json:"cpfCnpj"`
	Email       string `json:"email,omitempty"`
	MobilePhone string `json:"mobilePhone,omitempty"`
}

// CustomerInput is the creation payload for a gateway customer.
type CustomerInput struct {
	Name        string `json:"name"`
	CpfCnpj     string `json:"cpfCnpj"`
	Email       string `json:"email,omitempty"`
	MobilePhone string `json:"mobilePhone,omitempty"`
}

type customerListResponse struct {
	Data       []Customer `json:"data"`
	TotalCount int        `json:"totalCount"`
}

// PaymentInput is the creation payload for a charge.
type PaymentInput struct {
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	DueDate           string  `json:"dueDate"`
	Description       string  `json:"description,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`
}

// Payment mirrors the gateway's charge record.
type Payment struct {
	ID                string  `json:"id"`
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	DueDate           string  `json:"dueDate"`
	Description       string  `json:"description"`
	ExternalReference string  `json:"externalReference"`
	InvoiceURL        string  `json:"invoiceUrl"`
	Status            string  `json:"status"`
}

// PixQRCode is the charge's PIX payload: a base64 QR image plus the
// copy-and-paste code.
type PixQRCode struct {
	EncodedImage   string `json:"encodedImage"`
	Payload        string `json:"payload"`
	ExpirationDate string `json:"expirationDate"`
}

// PixPaymentResult is the partial-success contract of CreatePixPayment: the
// payment is always present once created; the PIX fields may be missing when
// QR retrieval failed, in which case QRCodeError is set and the caller is
// expected to fall back to the hosted InvoiceURL.
type PixPaymentResult struct {
	Payment      Payment
	PixCode      string
	QRCodeImage  string
	QRCodeError  bool
	ErrorMessage string
}
