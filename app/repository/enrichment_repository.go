package repository

import (
	"time"

	"github.com/ManuelReschke/LeadFox/app/models"
	"gorm.io/gorm"
)

// enrichmentRepository implements the EnrichmentRepository interface
type enrichmentRepository struct {
	db *gorm.DB
}

// NewEnrichmentRepository creates a new enrichment repository instance
func NewEnrichmentRepository(db *gorm.DB) EnrichmentRepository {
	return &enrichmentRepository{db: db}
}

// Create records a completed enrichment lookup
func (r *enrichmentRepository) Create(lookup *models.EnrichmentLookup) error {
	return r.db.Create(lookup).Error
}

// CountForMonth counts the account's lookups within the calendar month of
// the given time. The durable tally behind the Redis hot counter.
func (r *enrichmentRepository) CountForMonth(accountID uint, month time.Time) (int64, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)

	var count int64
	err := r.db.Model(&models.EnrichmentLookup{}).
		Where("account_id = ? AND created_at >= ? AND created_at < ?", accountID, start, end).
		Count(&count).Error
	return count, err
}

// GetUsageForPeriod reads the flushed monthly rollup. A missing row means
// zero flushed usage, not an error.
func (r *enrichmentRepository) GetUsageForPeriod(accountID uint, period string) (int64, error) {
	var usage models.EnrichmentUsage
	err := r.db.Where("account_id = ? AND period = ?", accountID, period).First(&usage).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return usage.UsedCount, nil
}
