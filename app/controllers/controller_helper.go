package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/LeadFox/internal/pkg/gate"
	"github.com/ManuelReschke/LeadFox/internal/pkg/usercontext"
)

func jsonError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// upgradeRequired renders a blocked gate decision. 402 carries the reason tag
// and the upgrade URL so the client can show the matching upsell.
func upgradeRequired(c *fiber.Ctx, d gate.Decision) error {
	return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
		"error":       "upgrade_required",
		"message":     "This feature is not included in your current plan",
		"reason":      d.Reason,
		"upgrade_url": d.UpgradeURL,
	})
}

// requireUser returns the request's user context or writes a 401. All /api/v1
// routes sit behind an auth middleware, so a missing context means a wiring
// bug rather than a normal anonymous request.
func requireUser(c *fiber.Ctx) (usercontext.UserContext, bool) {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn || userCtx.UserID == 0 {
		return userCtx, false
	}
	return userCtx, true
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
