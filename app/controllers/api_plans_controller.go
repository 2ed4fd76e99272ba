package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/LeadFox/internal/pkg/entitlements"
)

// HandleListPlans returns the public plan catalog: every plan with its
// feature flags and limits, straight from the entitlement tables so the
// catalog can never drift from what the gate enforces.
func HandleListPlans(c *fiber.Ctx) error {
	plans := make([]fiber.Map, 0, len(entitlements.AllPlans))
	for _, plan := range entitlements.AllPlans {
		features := fiber.Map{}
		for _, feature := range entitlements.AllFeatures {
			enabled, err := entitlements.FeatureEnabled(plan, feature)
			if err != nil {
				return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Entitlement configuration error")
			}
			features[string(feature)] = enabled
		}

		limits := fiber.Map{}
		for _, key := range entitlements.AllLimits {
			limit, err := entitlements.LimitFor(plan, key)
			if err != nil {
				return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Entitlement configuration error")
			}
			if limit.Unbounded {
				limits[string(key)] = nil
			} else {
				limits[string(key)] = limit.Value
			}
		}

		plans = append(plans, fiber.Map{
			"plan":     plan,
			"rank":     entitlements.PlanRank(plan),
			"features": features,
			"limits":   limits,
		})
	}

	return c.JSON(fiber.Map{"plans": plans})
}
