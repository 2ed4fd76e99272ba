package repository

import (
	"fmt"
	"time"

	"github.com/ManuelReschke/LeadFox/app/models"
	"gorm.io/gorm"
)

// leadRepository implements the LeadRepository interface
type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository instance
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

// Create creates a new lead in the database
func (r *leadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

// GetByUUID retrieves a lead by its public UUID, scoped to the account
func (r *leadRepository) GetByUUID(accountID uint, uuid string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.Where("account_id = ? AND uuid = ?", accountID, uuid).First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// GetByAccountID retrieves the account's leads, newest first. A limit of 0
// returns the whole collection; the page-level filter runs in memory.
func (r *leadRepository) GetByAccountID(accountID uint, limit int) ([]models.Lead, error) {
	var leads []models.Lead
	query := r.db.Where("account_id = ?", accountID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&leads).Error
	return leads, err
}

// UpdateStage moves a lead to a new pipeline stage and returns the updated row
func (r *leadRepository) UpdateStage(accountID uint, uuid string, stage string) (*models.Lead, error) {
	if !models.IsValidStage(stage) {
		return nil, fmt.Errorf("unknown lead stage %q", stage)
	}
	lead, err := r.GetByUUID(accountID, uuid)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	updates := map[string]interface{}{"stage": stage, "last_contact_at": &now}
	if err := r.db.Model(lead).Updates(updates).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

// CountOpenByAccountID counts leads still in the pipeline for quota checks
func (r *leadRepository) CountOpenByAccountID(accountID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).
		Where("account_id = ? AND stage NOT IN ?", accountID, []string{models.LEAD_STAGE_CLOSED, models.LEAD_STAGE_LOST}).
		Count(&count).Error
	return count, err
}

// CountCreatedSince counts leads created after the given time across accounts
func (r *leadRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// Count returns the total number of leads
func (r *leadRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Lead{}).Count(&count).Error
	return count, err
}
