// Package alerts computes rent reminder lists for the owner dashboard.
// The computation is a pure function over the supplied contracts and is
// recomputed on every dashboard load.
package alerts

import (
	"fmt"
	"sort"
	"time"

	"github.com/renilson-medeiros/lugo/app/models"
)

type AlertType string

const (
	AlertTypeOverdue  AlertType = "overdue"
	AlertTypeUpcoming AlertType = "upcoming"
)

// LookaheadDays is how far ahead of the due day a reminder is surfaced.
const LookaheadDays = 5

// Alert is one dashboard reminder entry.
type Alert struct {
	ID           string    `json:"id"`
	TenantID     uint      `json:"tenant_id"`
	TenantName   string    `json:"tenant_name"`
	PropertyName string    `json:"property_name"`
	DueDay       int       `json:"due_day"`
	Type         AlertType `json:"type"`
	Amount       float64   `json:"amount"`
	DueDate      time.Time `json:"due_date"`
}

// Compute builds the sorted reminder list for one owner. paidThisMonth holds
// tenant ids that already have a receipt dated within today's calendar month;
// those tenants never alert regardless of due-day arithmetic.
func Compute(tenants []models.Tenant, paidThisMonth map[uint]bool, today time.Time) []Alert {
	alerts := make([]Alert, 0, len(tenants))

	for _, tenant := range tenants {
		if !tenant.IsActive() || paidThisMonth[tenant.ID] {
			continue
		}

		if beforeFirstCharge(tenant, today) {
			continue
		}

		day := today.Day()
		var alertType AlertType
		switch {
		case tenant.DueDay < day:
			alertType = AlertTypeOverdue
		case tenant.DueDay <= day+LookaheadDays:
			alertType = AlertTypeUpcoming
		default:
			continue
		}

		alerts = append(alerts, Alert{
			ID:           fmt.Sprintf("%s-%d", alertType, tenant.ID),
			TenantID:     tenant.ID,
			TenantName:   tenant.Name,
			PropertyName: tenant.Property.Label(),
			DueDay:       tenant.DueDay,
			Type:         alertType,
			Amount:       tenant.RentAmount,
			DueDate:      dueDateIn(today, tenant.DueDay),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Type != alerts[j].Type {
			return alerts[i].Type == AlertTypeOverdue
		}
		return alerts[i].DueDate.Before(alerts[j].DueDate)
	})
	return alerts
}

// beforeFirstCharge reports whether the contract's very first charge hasn't
// come due yet. The first valid due month is the month of the start date,
// pushed to the next month when the contract starts after its own due day.
func beforeFirstCharge(tenant models.Tenant, today time.Time) bool {
	if tenant.StartDate == nil {
		return false
	}

	start := *tenant.StartDate
	firstYear, firstMonth := start.Year(), start.Month()
	if start.Day() > tenant.DueDay {
		firstMonth++
		if firstMonth > time.December {
			firstMonth = time.January
			firstYear++
		}
	}

	if today.Year() < firstYear || (today.Year() == firstYear && today.Month() < firstMonth) {
		return true
	}
	if today.Year() == firstYear && today.Month() == firstMonth && today.Day() < tenant.DueDay {
		return true
	}
	return false
}

// dueDateIn anchors a due day in today's month, clamped to the month's last
// day so day-31 contracts still sort correctly in shorter months.
func dueDateIn(today time.Time, dueDay int) time.Time {
	lastDay := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location()).Day()
	if dueDay > lastDay {
		dueDay = lastDay
	}
	return time.Date(today.Year(), today.Month(), dueDay, 0, 0, 0, 0, today.Location())
}
