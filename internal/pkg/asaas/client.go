package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/renilson-medeiros/lugo/internal/pkg/env"
)

const defaultAPIBaseURL = "https://api.asaas.com/v3"

// Client is a thin typed wrapper over the PIX billing API. It holds no state
// beyond configuration; all operations are single HTTP calls with no retries.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClientFromEnv() *Client {
	return &Client{
		APIKey:  strings.TrimSpace(env.GetEnv("ASAAS_API_KEY", "")),
		BaseURL: strings.TrimRight(env.GetEnv("ASAAS_API_URL", defaultAPIBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// request performs an authenticated call and returns the raw body. The body
// is parsed for structured errors even on failure paths so gateway messages
// reach the caller.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, ErrNoAPIKey
	}

	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("asaas: invalid request url: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("asaas: encode request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("access_token", c.APIKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var parsed apiErrorResponse
		if json.Unmarshal(body, &parsed) == nil && len(parsed.Errors) > 0 {
			apiErr.Code = parsed.Errors[0].Code
			apiErr.Description = strings.TrimSpace(parsed.Errors[0].Description)
		}
		return nil, apiErr
	}

	return body, nil
}

// ListCustomersByCpfCnpj queries existing gateway customers filtered by tax id.
func (c *Client) ListCustomersByCpfCnpj(ctx context.Context, cpfCnpj string) ([]Customer, error) {
	q := url.Values{}
	q.Set("cpfCnpj", cpfCnpj)

	body, err := c.request(ctx, http.MethodGet, "/customers", q, nil)
	if err != nil {
		return nil, err
	}

	var out customerListResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("asaas: decode customer list: %w", err)
	}
	return out.Data, nil
}

// CreateCustomer registers a new gateway customer.
func (c *Client) CreateCustomer(ctx context.Context, in CustomerInput) (*Customer, error) {
	body, err := c.request(ctx, http.MethodPost, "/customers", nil, in)
	if err != nil {
		return nil, err
	}

	var out Customer
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("asaas: decode customer: %w", err)
	}
	return &out, nil
}

// GetOrCreateCustomer resolves the gateway customer for a CPF/CNPJ, creating
// one only when the lookup comes back empty. The first existing match wins.
// Two concurrent creations for the same tax id can still race; dedup beyond
// the lookup is the gateway's concern.
func (c *Client) GetOrCreateCustomer(ctx context.Context, in CustomerInput) (*Customer, error) {
	cpfCnpj := strings.TrimSpace(in.CpfCnpj)
	if cpfCnpj == "" {
		return nil, errors.New("asaas: cpfCnpj is required")
	}

	existing, err := c.ListCustomersByCpfCnpj(ctx, cpfCnpj)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &existing[0], nil
	}

	return c.CreateCustomer(ctx, in)
}

// CreatePayment creates a charge.
func (c *Client) CreatePayment(ctx context.Context, in PaymentInput) (*Payment, error) {
	body, err := c.request(ctx, http.MethodPost, "/payments", nil, in)
	if err != nil {
		return nil, err
	}

	var out Payment
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("asaas: decode payment: %w", err)
	}
	return &out, nil
}

// GetPixQRCode fetches the PIX QR image and copy-and-paste payload of a charge.
func (c *Client) GetPixQRCode(ctx context.Context, paymentID string) (*PixQRCode, error) {
	body, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/payments/%s/pixQrCode", paymentID), nil, nil)
	if err != nil {
		return nil, err
	}

	var out PixQRCode
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("asaas: decode pix qr code: %w", err)
	}
	return &out, nil
}

// CreatePixPayment creates a charge and then fetches its PIX payload. QR
// retrieval failure does not undo the creation: the result carries the
// payment untouched with QRCodeError set so the caller can fall back to the
// hosted invoice URL.
func (c *Client) CreatePixPayment(ctx context.Context, in PaymentInput) (*PixPaymentResult, error) {
	in.BillingType = BillingTypePix

	payment, err := c.CreatePayment(ctx, in)
	if err != nil {
		return nil, err
	}

	result := &PixPaymentResult{Payment: *payment}

	qr, err := c.GetPixQRCode(ctx, payment.ID)
	if err != nil {
		result.QRCodeError = true
		result.ErrorMessage = err.Error()
		return result, nil
	}

	result.PixCode = qr.Payload
	result.QRCodeImage = qr.EncodedImage
	return result, nil
}
