package billing

import (
	"crypto/subtle"
	"strings"
)

// VerifyWebhookToken checks the provider's access-token header against the
// configured shared secret in constant time. An empty secret fails closed:
// entitlement writes must never be driven by an unverified payload.
func VerifyWebhookToken(tokenHeader, secret string) bool {
	token := strings.TrimSpace(tokenHeader)
	want := strings.TrimSpace(secret)
	if token == "" || want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(want)) == 1
}
