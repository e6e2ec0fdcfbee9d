package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/renilson-medeiros/lugo/app/models"
)

func makeTenant(id uint, name string, dueDay int, start *time.Time) models.Tenant {
	return models.Tenant{
		ID:         id,
		Name:       name,
		DueDay:     dueDay,
		RentAmount: 1200,
		StartDate:  start,
		Status:     models.TenantStatusActive,
		Property: models.Property{
			Name: "Casa Azul",
			City: "João Pessoa",
			State: "PB",
		},
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestComputeClassification(t *testing.T) {
	today := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	t.Run("paid tenant never alerts", func(t *testing.T) {
		tenants := []models.Tenant{makeTenant(1, "Ana", 15, nil)}
		alerts := Compute(tenants, map[uint]bool{1: true}, today)
		assert.Empty(t, alerts)
	})

	t.Run("due day already passed is overdue", func(t *testing.T) {
		tenants := []models.Tenant{makeTenant(1, "Ana", 15, nil)}
		alerts := Compute(tenants, nil, today)
		if assert.Len(t, alerts, 1) {
			assert.Equal(t, AlertTypeOverdue, alerts[0].Type)
			assert.Equal(t, "overdue-1", alerts[0].ID)
			assert.Equal(t, 15, alerts[0].DueDay)
			assert.Equal(t, float64(1200), alerts[0].Amount)
			assert.Equal(t, "Casa Azul - João Pessoa/PB", alerts[0].PropertyName)
		}
	})

	t.Run("due day within lookahead is upcoming", func(t *testing.T) {
		tenants := []models.Tenant{makeTenant(2, "Bruno", 23, nil)}
		alerts := Compute(tenants, nil, today)
		if assert.Len(t, alerts, 1) {
			assert.Equal(t, AlertTypeUpcoming, alerts[0].Type)
			assert.Equal(t, "upcoming-2", alerts[0].ID)
		}
	})

	t.Run("due day beyond lookahead is silent", func(t *testing.T) {
		tenants := []models.Tenant{makeTenant(3, "Carla", 30, nil)}
		alerts := Compute(tenants, nil, today)
		assert.Empty(t, alerts)
	})

	t.Run("inactive tenants are skipped", func(t *testing.T) {
		tenant := makeTenant(4, "Davi", 15, nil)
		tenant.Status = models.TenantStatusInactive
		alerts := Compute([]models.Tenant{tenant}, nil, today)
		assert.Empty(t, alerts)
	})
}

func TestComputeFirstDueMonthGating(t *testing.T) {
	t.Run("start after due day pushes the first charge to next month", func(t *testing.T) {
		// Started on the 25th with rent due on the 10th: nothing can be
		// owed during the start month, even past the 25th.
		tenant := makeTenant(1, "Ana", 10, datePtr(2026, 3, 25))
		today := time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC)
		assert.Empty(t, Compute([]models.Tenant{tenant}, nil, today))

		// In April the charge exists and the 10th has passed.
		today = time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)
		alerts := Compute([]models.Tenant{tenant}, nil, today)
		if assert.Len(t, alerts, 1) {
			assert.Equal(t, AlertTypeOverdue, alerts[0].Type)
		}
	})

	t.Run("first charge not yet due within the start month", func(t *testing.T) {
		tenant := makeTenant(1, "Ana", 20, datePtr(2026, 3, 5))
		today := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
		assert.Empty(t, Compute([]models.Tenant{tenant}, nil, today))
	})

	t.Run("december start rolls into january", func(t *testing.T) {
		tenant := makeTenant(1, "Ana", 5, datePtr(2025, 12, 20))
		today := time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)
		assert.Empty(t, Compute([]models.Tenant{tenant}, nil, today))

		today = time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
		alerts := Compute([]models.Tenant{tenant}, nil, today)
		if assert.Len(t, alerts, 1) {
			assert.Equal(t, AlertTypeOverdue, alerts[0].Type)
		}
	})
}

func TestComputeSortOrder(t *testing.T) {
	today := time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)

	tenants := []models.Tenant{
		makeTenant(1, "Upcoming-28", 28, nil),
		makeTenant(2, "Overdue-20", 20, nil),
		makeTenant(3, "Overdue-5", 5, nil),
		makeTenant(4, "Upcoming-26", 26, nil),
	}

	alerts := Compute(tenants, nil, today)
	if assert.Len(t, alerts, 4) {
		assert.Equal(t, "overdue-3", alerts[0].ID)
		assert.Equal(t, "overdue-2", alerts[1].ID)
		assert.Equal(t, "upcoming-4", alerts[2].ID)
		assert.Equal(t, "upcoming-1", alerts[3].ID)
	}
}

func TestComputeClampsDueDateInShortMonths(t *testing.T) {
	// February: a day-31 contract anchors to the 28th for sorting.
	today := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	tenants := []models.Tenant{makeTenant(1, "Ana", 31, nil)}

	alerts := Compute(tenants, nil, today)
	if assert.Len(t, alerts, 1) {
		assert.Equal(t, 31, alerts[0].DueDay)
		assert.Equal(t, 28, alerts[0].DueDate.Day())
	}
}
