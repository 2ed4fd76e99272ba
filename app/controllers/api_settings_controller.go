package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/LeadFox/app/models"
	"github.com/ManuelReschke/LeadFox/internal/pkg/database"
	"github.com/ManuelReschke/LeadFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/LeadFox/internal/pkg/gate"
)

// HandleGetNotificationSettings returns the stored settings merged with the
// documented defaults. An account without a stored row gets the defaults
// persisted on first read.
func HandleGetNotificationSettings(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	db := database.GetDB()
	if db == nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Database unavailable")
	}
	settings, err := models.GetOrCreateNotificationSettings(db, userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load settings")
	}
	return c.JSON(settings)
}

// HandleUpdateNotificationSettings applies a partial update. Only keys in the
// allow-list ever reach the database; unspecified keys keep their stored
// values. Switching on a premium channel is gated on the matching feature.
func HandleUpdateNotificationSettings(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	var update models.NotificationSettingsUpdate
	if err := c.BodyParser(&update); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if update.WantsPush() {
		decision, err := gate.Evaluate(userCtx.Subscription, entitlements.FeaturePushNotifications)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Entitlement configuration error")
		}
		if !decision.Allowed {
			return upgradeRequired(c, decision)
		}
	}
	if update.WantsSlack() {
		decision, err := gate.Evaluate(userCtx.Subscription, entitlements.FeatureSlackNotifications)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Entitlement configuration error")
		}
		if !decision.Allowed {
			return upgradeRequired(c, decision)
		}
	}

	db := database.GetDB()
	if db == nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Database unavailable")
	}
	settings, err := models.GetOrCreateNotificationSettings(db, userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load settings")
	}

	changes := update.Changes()
	if len(changes) > 0 {
		if err := db.Model(settings).Updates(changes).Error; err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save settings")
		}
		update.Apply(settings)
	}

	return c.JSON(settings)
}
