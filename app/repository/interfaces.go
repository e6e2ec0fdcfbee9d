package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/renilson-medeiros/lugo/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateLastLogin(id uint, at time.Time) error
}

// PropertyRepository defines the interface for property-related database operations
type PropertyRepository interface {
	Create(property *models.Property) error
	GetByID(id uint) (*models.Property, error)
	GetByUserID(userID uint) ([]models.Property, error)
	Update(property *models.Property) error
	Delete(id uint) error
	CountByUserID(userID uint) (int64, error)
}

// TenantRepository defines the interface for tenant-contract database operations
type TenantRepository interface {
	Create(tenant *models.Tenant) error
	GetByID(id uint) (*models.Tenant, error)
	GetByUserID(userID uint) ([]models.Tenant, error)
	GetActiveByUserID(userID uint) ([]models.Tenant, error)
	Update(tenant *models.Tenant) error
	Delete(id uint) error
	CountActiveByUserID(userID uint) (int64, error)
	CountByPropertyID(propertyID uint) (int64, error)
	SumActiveRentByUserID(userID uint) (float64, error)
}

// ReceiptRepository defines the interface for receipt-related database operations
type ReceiptRepository interface {
	Create(receipt *models.Receipt) error
	GetByID(id uint) (*models.Receipt, error)
	GetByToken(token string) (*models.Receipt, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Receipt, error)
	Delete(id uint) error
	TenantIDsWithReceiptInMonth(userID uint, referenceMonth string) (map[uint]bool, error)
	SumForMonth(userID uint, referenceMonth string) (float64, error)
}

// Repositories holds one instance of every repository
type Repositories struct {
	User     UserRepository
	Property PropertyRepository
	Tenant   TenantRepository
	Receipt  ReceiptRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Property: NewPropertyRepository(db),
		Tenant:   NewTenantRepository(db),
		Receipt:  NewReceiptRepository(db),
	}
}
