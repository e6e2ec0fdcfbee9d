package repository

import (
	"gorm.io/gorm"

	"github.com/renilson-medeiros/lugo/app/models"
)

// tenantRepository implements the TenantRepository interface
type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository instance
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

// Create creates a new tenant contract in the database
func (r *tenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// GetByID retrieves a tenant by its ID, with the associated property
func (r *tenantRepository) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Preload("Property").First(&tenant, id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetByUserID retrieves all tenants belonging to an owner
func (r *tenantRepository) GetByUserID(userID uint) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := r.db.Preload("Property").Where("user_id = ?", userID).Order("name ASC").Find(&tenants).Error
	return tenants, err
}

// GetActiveByUserID retrieves the owner's active tenants with their properties
func (r *tenantRepository) GetActiveByUserID(userID uint) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := r.db.Preload("Property").
		Where("user_id = ? AND status = ?", userID, models.TenantStatusActive).
		Order("name ASC").
		Find(&tenants).Error
	return tenants, err
}

// Update updates an existing tenant contract
func (r *tenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}

// Delete soft-deletes a tenant contract
func (r *tenantRepository) Delete(id uint) error {
	return r.db.Delete(&models.Tenant{}, id).Error
}

// CountActiveByUserID counts the owner's active tenant contracts
func (r *tenantRepository) CountActiveByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Tenant{}).
		Where("user_id = ? AND status = ?", userID, models.TenantStatusActive).
		Count(&count).Error
	return count, err
}

// CountByPropertyID counts tenants still attached to a property
func (r *tenantRepository) CountByPropertyID(propertyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Tenant{}).Where("property_id = ?", propertyID).Count(&count).Error
	return count, err
}

// SumActiveRentByUserID sums the rent of the owner's active contracts
func (r *tenantRepository) SumActiveRentByUserID(userID uint) (float64, error) {
	var total float64
	err := r.db.Model(&models.Tenant{}).
		Where("user_id = ? AND status = ?", userID, models.TenantStatusActive).
		Select("COALESCE(SUM(rent_amount), 0)").
		Scan(&total).Error
	return total, err
}
