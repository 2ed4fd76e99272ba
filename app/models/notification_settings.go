package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationSettings stores the per-user notification channel choices.
// Column defaults double as the merge defaults: a row created before a
// column existed still reads back with the documented default.
type NotificationSettings struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	UserID             uint      `gorm:"uniqueIndex" json:"user_id"`
	EmailNewLead       bool      `gorm:"default:true" json:"email_new_lead"`
	EmailLeadAssigned  bool      `gorm:"default:true" json:"email_lead_assigned"`
	EmailWeeklySummary bool      `gorm:"default:false" json:"email_weekly_summary"`
	PushEnabled        bool      `gorm:"default:false" json:"push_enabled"`
	SlackEnabled       bool      `gorm:"default:false" json:"slack_enabled"`
	SlackWebhookURL    string    `gorm:"type:varchar(500);default:''" json:"slack_webhook_url"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// DefaultNotificationSettings returns the explicit defaults applied when an
// account has no stored row yet.
func DefaultNotificationSettings(userID uint) NotificationSettings {
	return NotificationSettings{
		UserID:            userID,
		EmailNewLead:      true,
		EmailLeadAssigned: true,
	}
}

// GetOrCreateNotificationSettings returns stored settings merged with
// defaults, creating the default row on first read.
func GetOrCreateNotificationSettings(db *gorm.DB, userID uint) (*NotificationSettings, error) {
	var ns NotificationSettings
	if err := db.Where("user_id = ?", userID).First(&ns).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			ns = DefaultNotificationSettings(userID)
			if err := db.Create(&ns).Error; err != nil {
				return nil, err
			}
			return &ns, nil
		}
		return nil, err
	}
	return &ns, nil
}

// NotificationSettingsUpdate is the partial-update payload. Pointer fields
// distinguish "not sent" from "set to zero value"; keys outside this struct
// are dropped during decode and never reach the database.
type NotificationSettingsUpdate struct {
	EmailNewLead       *bool   `json:"email_new_lead"`
	EmailLeadAssigned  *bool   `json:"email_lead_assigned"`
	EmailWeeklySummary *bool   `json:"email_weekly_summary"`
	PushEnabled        *bool   `json:"push_enabled"`
	SlackEnabled       *bool   `json:"slack_enabled"`
	SlackWebhookURL    *string `json:"slack_webhook_url"`
}

// Changes builds the column map for the update. The write path is a strict
// allow-list: only columns named here can ever be written, and only when the
// client actually sent them.
func (u NotificationSettingsUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.EmailNewLead != nil {
		changes["email_new_lead"] = *u.EmailNewLead
	}
	if u.EmailLeadAssigned != nil {
		changes["email_lead_assigned"] = *u.EmailLeadAssigned
	}
	if u.EmailWeeklySummary != nil {
		changes["email_weekly_summary"] = *u.EmailWeeklySummary
	}
	if u.PushEnabled != nil {
		changes["push_enabled"] = *u.PushEnabled
	}
	if u.SlackEnabled != nil {
		changes["slack_enabled"] = *u.SlackEnabled
	}
	if u.SlackWebhookURL != nil {
		changes["slack_webhook_url"] = *u.SlackWebhookURL
	}
	return changes
}

// Apply merges the update into the settings value in memory, leaving fields
// the client did not send untouched.
func (u NotificationSettingsUpdate) Apply(ns *NotificationSettings) {
	if u.EmailNewLead != nil {
		ns.EmailNewLead = *u.EmailNewLead
	}
	if u.EmailLeadAssigned != nil {
		ns.EmailLeadAssigned = *u.EmailLeadAssigned
	}
	if u.EmailWeeklySummary != nil {
		ns.EmailWeeklySummary = *u.EmailWeeklySummary
	}
	if u.PushEnabled != nil {
		ns.PushEnabled = *u.PushEnabled
	}
	if u.SlackEnabled != nil {
		ns.SlackEnabled = *u.SlackEnabled
	}
	if u.SlackWebhookURL != nil {
		ns.SlackWebhookURL = *u.SlackWebhookURL
	}
}

// WantsPush reports whether the update tries to switch the push channel on.
func (u NotificationSettingsUpdate) WantsPush() bool {
	return u.PushEnabled != nil && *u.PushEnabled
}

// WantsSlack reports whether the update tries to switch the Slack channel on.
func (u NotificationSettingsUpdate) WantsSlack() bool {
	return u.SlackEnabled != nil && *u.SlackEnabled
}
