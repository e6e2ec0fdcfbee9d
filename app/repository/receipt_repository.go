package repository

import (
	"gorm.io/gorm"

	"github.com/renilson-medeiros/lugo/app/models"
)

// receiptRepository implements the ReceiptRepository interface
type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository instance
func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

// Create creates a new receipt in the database
func (r *receiptRepository) Create(receipt *models.Receipt) error {
	return r.db.Create(receipt).Error
}

// GetByID retrieves a receipt by its ID, with tenant and property
func (r *receiptRepository) GetByID(id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.Preload("Tenant.Property").First(&receipt, id).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GetByToken retrieves a receipt by its public token
func (r *receiptRepository) GetByToken(token string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.Preload("Tenant.Property").Where("token = ?", token).First(&receipt).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GetByUserID retrieves an owner's receipts, most recent first
func (r *receiptRepository) GetByUserID(userID uint, offset, limit int) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := r.db.Preload("Tenant.Property").
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Offset(offset).Limit(limit).
		Find(&receipts).Error
	return receipts, err
}

// Delete soft-deletes a receipt
func (r *receiptRepository) Delete(id uint) error {
	return r.db.Delete(&models.Receipt{}, id).Error
}

// TenantIDsWithReceiptInMonth returns the owner's tenant ids that already
// have a receipt for the given reference month (formatted "2006-01").
func (r *receiptRepository) TenantIDsWithReceiptInMonth(userID uint, referenceMonth string) (map[uint]bool, error) {
	var ids []uint
	err := r.db.Model(&models.Receipt{}).
		Where("user_id = ? AND reference_month = ?", userID, referenceMonth).
		Distinct().
		Pluck("tenant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// SumForMonth sums the receipt amounts recorded for a reference month
func (r *receiptRepository) SumForMonth(userID uint, referenceMonth string) (float64, error) {
	var total float64
	err := r.db.Model(&models.Receipt{}).
		Where("user_id = ? AND reference_month = ?", userID, referenceMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
