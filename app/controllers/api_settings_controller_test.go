package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/LeadFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/LeadFox/internal/pkg/subscription"
	"github.com/ManuelReschke/LeadFox/internal/pkg/usercontext"
)

func settingsTestApp(sub subscription.Subscription) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("USER_CONTEXT", usercontext.UserContext{
			UserID:       7,
			Username:     "broker",
			IsLoggedIn:   true,
			Subscription: sub,
		})
		return c.Next()
	})
	app.Patch("/api/v1/settings/notifications", HandleUpdateNotificationSettings)
	return app
}

func TestUpdateNotificationSettingsFreePlanBlocksPush(t *testing.T) {
	app := settingsTestApp(subscription.Default())

	req := httptest.NewRequest("PATCH", "/api/v1/settings/notifications", strings.NewReader(`{"push_enabled":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "upgrade_required", payload["error"])
	assert.Equal(t, "plan_lock", payload["reason"])
	assert.Equal(t, "/billing/upgrade", payload["upgrade_url"])
}

func TestUpdateNotificationSettingsFreePlanBlocksSlack(t *testing.T) {
	app := settingsTestApp(subscription.Default())

	req := httptest.NewRequest("PATCH", "/api/v1/settings/notifications", strings.NewReader(`{"slack_enabled":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
}

func TestUpdateNotificationSettingsCanceledProDegradesToFree(t *testing.T) {
	app := settingsTestApp(subscription.Subscription{
		Plan:   entitlements.PlanPro,
		Status: subscription.StatusCanceled,
	})

	req := httptest.NewRequest("PATCH", "/api/v1/settings/notifications", strings.NewReader(`{"push_enabled":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)
}

func TestUpdateNotificationSettingsRequiresAuth(t *testing.T) {
	app := fiber.New()
	app.Patch("/api/v1/settings/notifications", HandleUpdateNotificationSettings)

	req := httptest.NewRequest("PATCH", "/api/v1/settings/notifications", strings.NewReader(`{"email_new_lead":false}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
