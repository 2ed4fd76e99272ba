package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestNotificationSettingsDefaults(t *testing.T) {
	ns := DefaultNotificationSettings(7)

	assert.Equal(t, uint(7), ns.UserID)
	assert.True(t, ns.EmailNewLead)
	assert.True(t, ns.EmailLeadAssigned)
	assert.False(t, ns.EmailWeeklySummary)
	assert.False(t, ns.PushEnabled)
	assert.False(t, ns.SlackEnabled)
	assert.Equal(t, "", ns.SlackWebhookURL)
}

func TestUpdateChangesIsAllowList(t *testing.T) {
	// unknown keys vanish at decode time and can never reach the database
	payload := []byte(`{"push_enabled":true,"plan":"enterprise","favorite_color":"red"}`)

	var upd NotificationSettingsUpdate
	require.NoError(t, json.Unmarshal(payload, &upd))

	changes := upd.Changes()
	assert.Equal(t, map[string]interface{}{"push_enabled": true}, changes)
}

func TestUpdateChangesOmitsUnsentKeys(t *testing.T) {
	upd := NotificationSettingsUpdate{
		EmailWeeklySummary: boolPtr(true),
		SlackEnabled:       boolPtr(false),
	}

	changes := upd.Changes()
	assert.Len(t, changes, 2)
	assert.Equal(t, true, changes["email_weekly_summary"])
	assert.Equal(t, false, changes["slack_enabled"])
	assert.NotContains(t, changes, "email_new_lead")
	assert.NotContains(t, changes, "push_enabled")
}

func TestApplyMergesPartialUpdate(t *testing.T) {
	ns := DefaultNotificationSettings(1)
	url := "https://hooks.slack.com/services/T000/B000/XXX"

	upd := NotificationSettingsUpdate{
		SlackEnabled:    boolPtr(true),
		SlackWebhookURL: &url,
	}
	upd.Apply(&ns)

	// updated keys applied
	assert.True(t, ns.SlackEnabled)
	assert.Equal(t, url, ns.SlackWebhookURL)
	// untouched keys keep their previous values
	assert.True(t, ns.EmailNewLead)
	assert.True(t, ns.EmailLeadAssigned)
	assert.False(t, ns.PushEnabled)
}

func TestApplyIsIdempotent(t *testing.T) {
	ns := DefaultNotificationSettings(1)
	upd := NotificationSettingsUpdate{PushEnabled: boolPtr(true)}

	upd.Apply(&ns)
	first := ns
	upd.Apply(&ns)

	assert.Equal(t, first, ns)
}

func TestWantsPushAndSlack(t *testing.T) {
	assert.False(t, NotificationSettingsUpdate{}.WantsPush())
	assert.False(t, NotificationSettingsUpdate{PushEnabled: boolPtr(false)}.WantsPush())
	assert.True(t, NotificationSettingsUpdate{PushEnabled: boolPtr(true)}.WantsPush())

	assert.False(t, NotificationSettingsUpdate{SlackEnabled: boolPtr(false)}.WantsSlack())
	assert.True(t, NotificationSettingsUpdate{SlackEnabled: boolPtr(true)}.WantsSlack())
}
