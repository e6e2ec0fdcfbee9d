package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	TenantStatusActive   = "active"
	TenantStatusInactive = "inactive"
)

// Tenant is a rental contract between an owner and a tenant for one property.
// DueDay is the billing day of month the rent falls due on; StartDate bounds
// the first month a charge can exist in.
type Tenant struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	PropertyID uint           `gorm:"not null;index" json:"property_id" validate:"required"`
	Property   Property       `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Name       string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	CPF        string         `gorm:"type:varchar(14)" json:"cpf" validate:"omitempty,min=11,max=14"`
	Email      string         `gorm:"type:varchar(200)" json:"email" validate:"omitempty,email"`
	Phone      string         `gorm:"type:varchar(20)" json:"phone" validate:"max=20"`
	RentAmount float64        `gorm:"type:decimal(10,2);not null" json:"rent_amount" validate:"required,gt=0"`
	DueDay     int            `gorm:"not null" json:"due_day" validate:"required,min=1,max=31"`
	StartDate  *time.Time     `gorm:"type:date;default:null" json:"start_date,omitempty"`
	Status     string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status" validate:"oneof=active inactive"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Tenant) Validate() error {
	v := validator.New()

	return v.Struct(t)
}

// IsActive reports whether the contract is currently in force.
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
