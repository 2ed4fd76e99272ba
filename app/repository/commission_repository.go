package repository

import (
	"github.com/ManuelReschke/LeadFox/app/models"
	"gorm.io/gorm"
)

// commissionRepository implements the CommissionRepository interface
type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new commission repository instance
func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

// Create creates a new commission record
func (r *commissionRepository) Create(commission *models.Commission) error {
	return r.db.Create(commission).Error
}

// GetByAccountID retrieves the account's commissions, newest first
func (r *commissionRepository) GetByAccountID(accountID uint, limit int) ([]models.Commission, error) {
	var commissions []models.Commission
	query := r.db.Where("account_id = ?", accountID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&commissions).Error
	return commissions, err
}

// GetByID retrieves a commission scoped to the account
func (r *commissionRepository) GetByID(accountID uint, id uint) (*models.Commission, error) {
	var commission models.Commission
	err := r.db.Where("account_id = ? AND id = ?", accountID, id).First(&commission).Error
	if err != nil {
		return nil, err
	}
	return &commission, nil
}
