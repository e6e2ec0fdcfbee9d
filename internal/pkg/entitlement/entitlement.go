package entitlement

import (
	"time"

	"github.com/renilson-medeiros/lugo/app/models"
)

// IsTrialExpired reports whether a trial subscriber has run out their trial
// window. Expiration is derived, never stored: the row keeps reading "trial"
// until a webhook event moves it. Non-trial statuses are never trial-expired,
// whatever their expiry timestamp says.
func IsTrialExpired(u *models.User, now time.Time) bool {
	if u.SubscriptionStatus != models.SubscriptionStatusTrial {
		return false
	}
	if u.SubscriptionExpiresAt == nil {
		return false
	}
	return u.SubscriptionExpiresAt.Before(now)
}

// IsEntitled answers "does this subscriber currently get full features?".
// It must be re-evaluated on every access check, not cached across requests.
func IsEntitled(u *models.User, now time.Time) bool {
	switch u.SubscriptionStatus {
	case models.SubscriptionStatusTrial:
		return !IsTrialExpired(u, now)
	case models.SubscriptionStatusActive:
		return u.SubscriptionExpiresAt == nil || u.SubscriptionExpiresAt.After(now)
	default:
		// past_due and canceled deny access until a payment event recovers them.
		return false
	}
}

// DaysLeft returns whole days until the entitlement window closes, zero when
// already closed or when no window is set.
func DaysLeft(u *models.User, now time.Time) int {
	if u.SubscriptionExpiresAt == nil {
		return 0
	}
	d := u.SubscriptionExpiresAt.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d.Hours() / 24)
}
