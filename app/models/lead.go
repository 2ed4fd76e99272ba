package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LEAD_STAGE_NEW       = "new"
	LEAD_STAGE_CONTACTED = "contacted"
	LEAD_STAGE_QUALIFIED = "qualified"
	LEAD_STAGE_SHOWING   = "showing"
	LEAD_STAGE_OFFER     = "offer"
	LEAD_STAGE_CLOSED    = "closed"
	LEAD_STAGE_LOST      = "lost"

	LEAD_SOURCE_ZILLOW   = "zillow"
	LEAD_SOURCE_REALTOR  = "realtor"
	LEAD_SOURCE_REFERRAL = "referral"
	LEAD_SOURCE_WEBSITE  = "website"
	LEAD_SOURCE_CRM      = "crm"
	LEAD_SOURCE_OTHER    = "other"
)

// LeadStages lists the pipeline stages in order.
var LeadStages = []string{
	LEAD_STAGE_NEW,
	LEAD_STAGE_CONTACTED,
	LEAD_STAGE_QUALIFIED,
	LEAD_STAGE_SHOWING,
	LEAD_STAGE_OFFER,
	LEAD_STAGE_CLOSED,
	LEAD_STAGE_LOST,
}

// Lead is one prospect aggregated from the CRM or entered manually.
// EstimatedValue is in fractional currency units, not cents.
type Lead struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UUID           string         `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	AccountID      uint           `gorm:"not null;index" json:"account_id"`
	AssignedTo     *uint          `gorm:"index" json:"assigned_to,omitempty"`
	Name           string         `gorm:"type:varchar(200)" json:"name"`
	Email          string         `gorm:"type:varchar(200);index" json:"email"`
	Phone          string         `gorm:"type:varchar(30)" json:"phone"`
	Source         string         `gorm:"type:varchar(30);default:'other';index" json:"source"`
	Stage          string         `gorm:"type:varchar(20);default:'new';index" json:"stage"`
	PropertyType   string         `gorm:"type:varchar(50)" json:"property_type"`
	EstimatedValue float64        `gorm:"type:decimal(14,2);default:0" json:"estimated_value"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CRMLeadID      string         `gorm:"type:varchar(100);default:null;index" json:"-"`
	LastContactAt  *time.Time     `gorm:"type:timestamp;default:null" json:"last_contact_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the public UUID used in API routes.
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.UUID == "" {
		l.UUID = uuid.New().String()
	}
	return nil
}

// IsValidStage reports whether the stage is one of the known pipeline stages.
func IsValidStage(stage string) bool {
	for _, s := range LeadStages {
		if s == stage {
			return true
		}
	}
	return false
}

// IsOpen reports whether the lead still counts as an active pipeline lead.
func (l *Lead) IsOpen() bool {
	return l.Stage != LEAD_STAGE_CLOSED && l.Stage != LEAD_STAGE_LOST
}
