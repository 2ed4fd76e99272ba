package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/LeadFox/app/models"
	"github.com/ManuelReschke/LeadFox/app/repository"
	"github.com/ManuelReschke/LeadFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/LeadFox/internal/pkg/statistics"
)

// HandleGetAccount returns the account profile with the resolved plan, trial
// countdown, limits and dashboard statistics in one payload.
func HandleGetAccount(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	account, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	sub := userCtx.Subscription
	now := time.Now()

	limits := fiber.Map{}
	for _, key := range entitlements.AllLimits {
		limit, err := entitlements.LimitFor(sub.Plan, key)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Entitlement configuration error")
		}
		if limit.Unbounded {
			limits[string(key)] = nil
		} else {
			limits[string(key)] = limit.Value
		}
	}

	features := fiber.Map{}
	for _, feature := range entitlements.AllFeatures {
		enabled, err := entitlements.FeatureEnabled(sub.Plan, feature)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Entitlement configuration error")
		}
		features[string(feature)] = enabled
	}

	stats := statistics.GetAccountStats(userCtx.UserID)

	return c.JSON(fiber.Map{
		"id":             account.ID,
		"name":           account.Name,
		"email":          account.Email,
		"company":        account.Company,
		"license_number": account.LicenseNumber,
		"status":         account.Status,
		"is_admin":       account.Role == models.ROLE_ADMIN,
		"created_at":     account.CreatedAt.UTC().Format(time.RFC3339),
		"subscription": fiber.Map{
			"plan":                  sub.Plan,
			"status":                sub.Status,
			"on_trial":              sub.OnTrial(now),
			"trial_ends_at":         formatTimePtr(sub.TrialEndsAt),
			"days_until_trial_ends": sub.DaysUntilTrialEnds(now),
		},
		"limits":   limits,
		"features": features,
		"stats": fiber.Map{
			"total_leads":     stats.TotalLeads,
			"new_leads_today": stats.NewLeadsToday,
			"open_leads":      stats.OpenLeads,
			"active_agents":   stats.ActiveAgents,
		},
	})
}
