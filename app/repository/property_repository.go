package repository

import (
	"gorm.io/gorm"

	"github.com/renilson-medeiros/lugo/app/models"
)

// propertyRepository implements the PropertyRepository interface
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository instance
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

// Create creates a new property in the database
func (r *propertyRepository) Create(property *models.Property) error {
	return r.db.Create(property).Error
}

// GetByID retrieves a property by its ID
func (r *propertyRepository) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetByUserID retrieves all properties owned by a user
func (r *propertyRepository) GetByUserID(userID uint) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&properties).Error
	return properties, err
}

// Update updates an existing property
func (r *propertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}

// Delete soft-deletes a property
func (r *propertyRepository) Delete(id uint) error {
	return r.db.Delete(&models.Property{}, id).Error
}

// CountByUserID counts the properties owned by a user
func (r *propertyRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Property{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
