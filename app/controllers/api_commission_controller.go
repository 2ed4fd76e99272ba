package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/LeadFox/app/models"
	"github.com/ManuelReschke/LeadFox/app/repository"
	"github.com/ManuelReschke/LeadFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/LeadFox/internal/pkg/gate"
)

// HandleListCommissions returns the caller's commissions with an optional
// status filter. The displayed total is the sum over exactly the filtered
// subset, formatted with fixed two decimals.
func HandleListCommissions(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	decision, err := gate.Evaluate(userCtx.Subscription, entitlements.FeatureCommissionReports)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Entitlement configuration error")
	}
	if !decision.Allowed {
		return upgradeRequired(c, decision)
	}

	commissions, err := repository.GetGlobalFactory().GetCommissionRepository().GetByAccountID(userCtx.UserID, 0)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load commissions")
	}

	filtered := filterCommissionsByStatus(commissions, strings.TrimSpace(c.Query("status")))

	return c.JSON(fiber.Map{
		"commissions": filtered,
		"aggregates": fiber.Map{
			"count": len(filtered),
			"total": formatAmount(commissionTotal(filtered)),
		},
	})
}

// filterCommissionsByStatus applies the optional status filter in memory.
func filterCommissionsByStatus(commissions []models.Commission, status string) []models.Commission {
	if status == "" {
		return commissions
	}
	filtered := make([]models.Commission, 0, len(commissions))
	for _, commission := range commissions {
		if commission.Status == status {
			filtered = append(filtered, commission)
		}
	}
	return filtered
}

// commissionTotal sums the amounts over exactly the given subset; the
// displayed total must never include rows the filter excluded.
func commissionTotal(commissions []models.Commission) float64 {
	var total float64
	for _, commission := range commissions {
		total += commission.Amount
	}
	return total
}

// formatAmount renders a monetary value with fixed two decimals.
func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
