package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	COMMISSION_STATUS_PENDING  = "pending"
	COMMISSION_STATUS_PAID     = "paid"
	COMMISSION_STATUS_CANCELED = "canceled"
)

// Commission tracks the payout earned on a closed lead. Amount is in
// fractional currency units in the source currency; rendering applies fixed
// two-decimal formatting.
type Commission struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	AccountID uint           `gorm:"not null;index" json:"account_id"`
	LeadID    uint           `gorm:"not null;index" json:"lead_id"`
	AgentID   *uint          `gorm:"index" json:"agent_id,omitempty"`
	Amount    float64        `gorm:"type:decimal(14,2);not null" json:"amount"`
	Rate      float64        `gorm:"type:decimal(5,4);default:0" json:"rate"`
	Currency  string         `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Status    string         `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ClosedAt  *time.Time     `gorm:"type:timestamp;default:null" json:"closed_at"`
	PaidAt    *time.Time     `gorm:"type:timestamp;default:null" json:"paid_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Lead Lead `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
}
