package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleListPlans(t *testing.T) {
	app := fiber.New()
	app.Get("/api/v1/plans", HandleListPlans)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/plans", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Plans []struct {
			Plan     string           `json:"plan"`
			Rank     int              `json:"rank"`
			Features map[string]bool  `json:"features"`
			Limits   map[string]*int64 `json:"limits"`
		} `json:"plans"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Plans, 3)

	byName := map[string]int{}
	for i, p := range payload.Plans {
		byName[p.Plan] = i
	}
	require.Contains(t, byName, "free")
	require.Contains(t, byName, "pro")
	require.Contains(t, byName, "enterprise")

	free := payload.Plans[byName["free"]]
	pro := payload.Plans[byName["pro"]]
	enterprise := payload.Plans[byName["enterprise"]]

	// Ranks order the tiers.
	assert.Less(t, free.Rank, pro.Rank)
	assert.Less(t, pro.Rank, enterprise.Rank)

	// Premium flags are off on free and on on enterprise.
	assert.False(t, free.Features["advanced_assignment_rules"])
	assert.False(t, free.Features["data_enrichment"])
	assert.False(t, pro.Features["admin_role"])
	assert.True(t, enterprise.Features["data_enrichment"])
	assert.True(t, enterprise.Features["admin_role"])

	// Bounded limits render as numbers, unbounded ones as null.
	require.NotNil(t, free.Limits["team_size"])
	assert.Positive(t, *free.Limits["team_size"])
	assert.Nil(t, enterprise.Limits["team_size"])
	assert.Nil(t, enterprise.Limits["active_leads"])
}
