package billing

import "time"

// The single subscription plan. Pricing and windows are fixed, not
// configurable per plan.
const (
	PlanName     = "Lugo Pro"
	PlanPriceBRL = 49.90

	// ChargeDueInDays is the grace window between charge creation and its
	// due date.
	ChargeDueInDays = 3

	// SubscriptionPeriod is the entitlement window granted per confirmed
	// payment.
	SubscriptionPeriod = 30 * 24 * time.Hour
)
