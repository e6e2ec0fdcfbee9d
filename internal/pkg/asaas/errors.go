package asaas

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoAPIKey means the gateway credential is absent from configuration.
// Every call fails closed until it is fixed; nothing is retryable.
var ErrNoAPIKey = errors.New("asaas: ASAAS_API_KEY is not configured")

// APIError is a non-2xx response from the gateway, carrying the first
// structured error entry from the response body when one was present.
type APIError struct {
	Status      int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("asaas: %s (status=%d)", e.Description, e.Status)
	}
	return fmt.Sprintf("asaas: request failed with status %d", e.Status)
}

type apiErrorResponse struct {
	Errors []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"errors"`
}

// IsUnauthorized reports whether the error is a gateway auth failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}
	return false
}
