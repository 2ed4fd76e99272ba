package models

import "time"

const (
	ENRICHMENT_STATUS_OK     = "ok"
	ENRICHMENT_STATUS_FAILED = "failed"
)

// EnrichmentLookup records one data-enrichment call against the external
// provider. Rows are counted per account per month for quota enforcement;
// the Redis counter is the hot path and these rows are the durable tally.
type EnrichmentLookup struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AccountID  uint      `gorm:"not null;index:idx_enrichment_lookups_account_created,priority:1" json:"account_id"`
	LeadID     *uint     `gorm:"index" json:"lead_id,omitempty"`
	Query      string    `gorm:"type:varchar(300)" json:"query"`
	Status     string    `gorm:"type:varchar(20);default:'ok'" json:"status"`
	ResultJSON string    `gorm:"type:longtext" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_enrichment_lookups_account_created,priority:2" json:"created_at"`
}
