package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Receipt records a rent payment for a tenant in a given reference month.
// A receipt dated within the current month removes the tenant from the
// dashboard due-date alerts for that month.
type Receipt struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	TenantID       uint           `gorm:"not null;index:idx_receipts_tenant_month,priority:1" json:"tenant_id" validate:"required"`
	Tenant         Tenant         `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	ReferenceMonth string         `gorm:"type:varchar(7);not null;index:idx_receipts_tenant_month,priority:2" json:"reference_month" validate:"required,len=7"`
	Amount         float64        `gorm:"type:decimal(10,2);not null" json:"amount" validate:"required,gt=0"`
	Token          string         `gorm:"type:varchar(36);uniqueIndex" json:"token"`
	IssuedAt       time.Time      `gorm:"not null" json:"issued_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Receipt) Validate() error {
	v := validator.New()

	return v.Struct(r)
}

// ReferenceMonthOf formats a date as the YYYY-MM key receipts are bucketed by.
func ReferenceMonthOf(t time.Time) string {
	return t.Format("2006-01")
}
