package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/LeadFox/app/models"
)

func leadFixtures() []models.Lead {
	return []models.Lead{
		{Name: "Alice Ahrens", Source: models.LEAD_SOURCE_WEBSITE, Stage: models.LEAD_STAGE_NEW, EstimatedValue: 450000},
		{Name: "Bernd Becker", Source: models.LEAD_SOURCE_REFERRAL, Stage: models.LEAD_STAGE_CONTACTED, EstimatedValue: 320000.50},
		{Name: "Clara Conrad", Source: models.LEAD_SOURCE_WEBSITE, Stage: models.LEAD_STAGE_QUALIFIED, EstimatedValue: 612500.25},
		{Name: "Dora Dietrich", Source: models.LEAD_SOURCE_ZILLOW, Stage: models.LEAD_STAGE_NEW, EstimatedValue: 275000},
		{Name: "Emil Ernst", Source: models.LEAD_SOURCE_WEBSITE, Stage: models.LEAD_STAGE_CLOSED, EstimatedValue: 530000},
	}
}

func TestFilterLeadsBySource(t *testing.T) {
	leads := leadFixtures()

	all := filterLeadsBySource(leads, "")
	assert.Len(t, all, len(leads))

	website := filterLeadsBySource(leads, models.LEAD_SOURCE_WEBSITE)
	require.Len(t, website, 3)
	for _, lead := range website {
		assert.Equal(t, models.LEAD_SOURCE_WEBSITE, lead.Source)
	}

	none := filterLeadsBySource(leads, "billboard")
	assert.Empty(t, none)
}

// The displayed aggregates must describe exactly the filtered subset, never
// the unfiltered collection.
func TestLeadAggregatesMatchFilteredSubset(t *testing.T) {
	leads := leadFixtures()
	website := filterLeadsBySource(leads, models.LEAD_SOURCE_WEBSITE)

	agg := leadAggregates(website)
	assert.Equal(t, 3, agg["count"])
	// 450000 + 612500.25 + 530000
	assert.Equal(t, "1592500.25", agg["total_value"])

	stages := agg["stage_counts"].(map[string]int)
	assert.Equal(t, 1, stages[models.LEAD_STAGE_NEW])
	assert.Equal(t, 1, stages[models.LEAD_STAGE_QUALIFIED])
	assert.Equal(t, 1, stages[models.LEAD_STAGE_CLOSED])
	assert.Zero(t, stages[models.LEAD_STAGE_CONTACTED])
}

func TestLeadAggregatesEmptySubset(t *testing.T) {
	agg := leadAggregates(nil)
	assert.Equal(t, 0, agg["count"])
	assert.Equal(t, "0.00", agg["total_value"])
	assert.Empty(t, agg["stage_counts"].(map[string]int))
}
