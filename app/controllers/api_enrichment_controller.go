package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/LeadFox/app/models"
	"github.com/ManuelReschke/LeadFox/app/repository"
	"github.com/ManuelReschke/LeadFox/internal/pkg/enrichment"
	"github.com/ManuelReschke/LeadFox/internal/pkg/gate"
	counter "github.com/ManuelReschke/LeadFox/internal/pkg/metrics/counter"
)

// enrichmentClient is swapped in tests; production wires the HTTP provider.
var enrichmentClient enrichment.Client = enrichment.NewHTTPClient()

type enrichmentLookupRequest struct {
	Query    string `json:"query"`
	LeadUUID string `json:"lead_uuid"`
}

// HandleEnrichmentLookup calls the external enrichment provider for a lead.
// The monthly quota covers attempted lookups: a no-match result still counts,
// only transport failures do not.
func HandleEnrichmentLookup(c *fiber.Ctx) error {
	userCtx, ok := requireUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	var req enrichmentLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Query is required")
	}

	now := time.Now()
	used := usedEnrichmentLookups(userCtx.UserID, now)
	decision, err := gate.CanUseEnrichment(userCtx.Subscription, used)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Entitlement configuration error")
	}
	if !decision.Allowed {
		return upgradeRequired(c, decision)
	}

	var leadID *uint
	if req.LeadUUID != "" {
		lead, err := repository.GetGlobalFactory().GetLeadRepository().GetByUUID(userCtx.UserID, req.LeadUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return jsonError(c, fiber.StatusNotFound, "not_found", "Lead not found")
			}
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load lead")
		}
		leadID = &lead.ID
	}

	result, err := enrichmentClient.Lookup(c.Context(), req.Query)
	if err != nil && !errors.Is(err, enrichment.ErrNoMatch) {
		return jsonError(c, fiber.StatusBadGateway, "enrichment_unavailable", "Enrichment provider is unavailable")
	}

	recordEnrichmentLookup(userCtx.UserID, leadID, req.Query, result, now)

	if errors.Is(err, enrichment.ErrNoMatch) {
		return c.JSON(fiber.Map{"match": false})
	}
	return c.JSON(fiber.Map{"match": true, "result": result})
}

// usedEnrichmentLookups combines the flushed monthly rollup with the pending
// Redis delta. If either read fails the durable lookup rows decide.
func usedEnrichmentLookups(accountID uint, now time.Time) int64 {
	repo := repository.GetGlobalFactory().GetEnrichmentRepository()

	flushed, err := repo.GetUsageForPeriod(accountID, models.UsagePeriod(now))
	if err == nil {
		pending, perr := counter.PendingEnrichmentUses(accountID, now)
		if perr == nil {
			return flushed + pending
		}
	}

	count, err := repo.CountForMonth(accountID, now)
	if err != nil {
		log.Errorf("failed to count enrichment usage for account %d: %v", accountID, err)
		return 0
	}
	return count
}

func recordEnrichmentLookup(accountID uint, leadID *uint, query string, result *enrichment.Result, now time.Time) {
	status := models.ENRICHMENT_STATUS_OK
	resultJSON := ""
	if result != nil {
		if data, err := json.Marshal(result); err == nil {
			resultJSON = string(data)
		}
	} else {
		status = models.ENRICHMENT_STATUS_FAILED
	}

	lookup := &models.EnrichmentLookup{
		AccountID:  accountID,
		LeadID:     leadID,
		Query:      query,
		Status:     status,
		ResultJSON: resultJSON,
	}
	if err := repository.GetGlobalFactory().GetEnrichmentRepository().Create(lookup); err != nil {
		log.Errorf("failed to record enrichment lookup for account %d: %v", accountID, err)
	}
	if err := counter.AddEnrichmentUse(accountID, now); err != nil {
		log.Errorf("failed to bump enrichment counter for account %d: %v", accountID, err)
	}
}
