package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Property struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	Name       string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Street     string         `gorm:"type:varchar(200)" json:"street" validate:"max=200"`
	Number     string         `gorm:"type:varchar(20)" json:"number" validate:"max=20"`
	Complement string         `gorm:"type:varchar(100)" json:"complement" validate:"max=100"`
	District   string         `gorm:"type:varchar(100)" json:"district" validate:"max=100"`
	City       string         `gorm:"type:varchar(100)" json:"city" validate:"max=100"`
	State      string         `gorm:"type:varchar(2)" json:"state" validate:"omitempty,len=2"`
	ZipCode    string         `gorm:"type:varchar(9)" json:"zip_code" validate:"max=9"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Property) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// Label is the short display string used on dashboards and receipts.
func (p *Property) Label() string {
	parts := []string{p.Name}
	if p.City != "" {
		if p.State != "" {
			parts = append(parts, fmt.Sprintf("%s/%s", p.City, p.State))
		} else {
			parts = append(parts, p.City)
		}
	}
	return strings.Join(parts, " - ")
}
