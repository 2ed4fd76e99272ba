package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/LeadFox/app/models"
	"github.com/ManuelReschke/LeadFox/app/repository"
	"github.com/ManuelReschke/LeadFox/internal/pkg/database"
	"github.com/ManuelReschke/LeadFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/LeadFox/internal/pkg/gate"
	"github.com/ManuelReschke/LeadFox/internal/pkg/jobqueue"
	"github.com/ManuelReschke/LeadFox/internal/pkg/statistics"
)

// HandleListLeads returns the caller's leads with an optional source filter.
// The collection is fetched once; the filter runs in memory and every
// aggregate is recomputed over exactly the filtered subset, so counts and
// totals always describe the rows in the response.
func HandleListLeads(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	leads, err := repository.GetGlobalFactory().GetLeadRepository().GetByAccountID(userCtx.UserID, 0)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load leads")
	}

	filtered := filterLeadsBySource(leads, strings.TrimSpace(c.Query("source")))

	items := filtered
	if limit := c.QueryInt("limit", 0); limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return c.JSON(fiber.Map{
		"leads":      items,
		"aggregates": leadAggregates(filtered),
	})
}

// filterLeadsBySource applies the optional source filter in memory. An empty
// source returns the collection unchanged.
func filterLeadsBySource(leads []models.Lead, source string) []models.Lead {
	if source == "" {
		return leads
	}
	filtered := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		if lead.Source == source {
			filtered = append(filtered, lead)
		}
	}
	return filtered
}

// leadAggregates recomputes every aggregate over exactly the given subset so
// the numbers always describe the rows they accompany.
func leadAggregates(leads []models.Lead) fiber.Map {
	var totalValue float64
	stageCounts := map[string]int{}
	for _, lead := range leads {
		totalValue += lead.EstimatedValue
		stageCounts[lead.Stage]++
	}
	return fiber.Map{
		"count":        len(leads),
		"total_value":  fmt.Sprintf("%.2f", totalValue),
		"stage_counts": stageCounts,
	}
}

// HandleGetLead returns a single lead by its public UUID.
func HandleGetLead(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	lead, err := repository.GetGlobalFactory().GetLeadRepository().GetByUUID(userCtx.UserID, c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Lead not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load lead")
	}
	return c.JSON(lead)
}

type createLeadRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Source         string  `json:"source"`
	PropertyType   string  `json:"property_type"`
	EstimatedValue float64 `json:"estimated_value"`
	Notes          string  `json:"notes"`
}

// HandleCreateLead adds a lead, enforcing the active-leads plan quota.
func HandleCreateLead(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	var req createLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Lead name is required")
	}
	if req.Source == "" {
		req.Source = models.LEAD_SOURCE_OTHER
	}

	leadRepo := repository.GetGlobalFactory().GetLeadRepository()
	openCount, err := leadRepo.CountOpenByAccountID(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to check lead quota")
	}
	decision, err := gate.CheckQuota(userCtx.Subscription, entitlements.LimitActiveLeads, openCount)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Entitlement configuration error")
	}
	if !decision.Allowed {
		return upgradeRequired(c, decision)
	}

	lead := &models.Lead{
		AccountID:      userCtx.UserID,
		Name:           req.Name,
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Source:         req.Source,
		Stage:          models.LEAD_STAGE_NEW,
		PropertyType:   req.PropertyType,
		EstimatedValue: req.EstimatedValue,
		Notes:          req.Notes,
	}
	if err := leadRepo.Create(lead); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create lead")
	}

	statistics.InvalidateAccountStats(userCtx.UserID)
	enqueueLeadAlert(userCtx.UserID, lead)

	return c.Status(fiber.StatusCreated).JSON(lead)
}

type updateLeadStageRequest struct {
	Stage string `json:"stage"`
}

// HandleUpdateLeadStage moves a lead through the pipeline.
func HandleUpdateLeadStage(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	var req updateLeadStageRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if !models.IsValidStage(req.Stage) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Unknown pipeline stage")
	}

	lead, err := repository.GetGlobalFactory().GetLeadRepository().UpdateStage(userCtx.UserID, c.Params("uuid"), req.Stage)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Lead not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update lead")
	}

	statistics.InvalidateAccountStats(userCtx.UserID)
	return c.JSON(lead)
}

// enqueueLeadAlert queues the new-lead mail when the account has the channel
// enabled. Best effort: a queue failure never fails the lead creation.
func enqueueLeadAlert(accountID uint, lead *models.Lead) {
	db := database.GetDB()
	if db == nil {
		return
	}
	ns, err := models.GetOrCreateNotificationSettings(db, accountID)
	if err != nil || !ns.EmailNewLead {
		return
	}
	owner, err := repository.GetGlobalFactory().GetUserRepository().GetByID(accountID)
	if err != nil {
		return
	}

	payload := jobqueue.LeadAlertMailJobPayload{
		AccountID:  accountID,
		Email:      owner.Email,
		LeadName:   lead.Name,
		LeadSource: lead.Source,
	}
	if _, err := jobqueue.GetManager().GetQueue().EnqueueJob(jobqueue.JobTypeLeadAlertMail, payload.ToMap()); err != nil {
		log.Errorf("failed to enqueue lead alert for account %d: %v", accountID, err)
	}
}
