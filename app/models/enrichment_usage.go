package models

import "time"

// EnrichmentUsage is the per-account monthly rollup of enrichment lookups.
// The Redis counter batches increments into these rows; the quota check
// reads the rollup plus the not-yet-flushed delta.
type EnrichmentUsage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;index:ux_enrichment_usages_account_period,unique,priority:1" json:"account_id"`
	Period    string    `gorm:"type:char(7);not null;index:ux_enrichment_usages_account_period,unique,priority:2" json:"period"`
	UsedCount int64     `gorm:"not null;default:0" json:"used_count"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// UsagePeriod formats a timestamp as the YYYY-MM period key.
func UsagePeriod(t time.Time) string {
	return t.UTC().Format("2006-01")
}
