package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/LeadFox/app/models"
)

func commissionFixtures() []models.Commission {
	return []models.Commission{
		{Status: models.COMMISSION_STATUS_PAID, Amount: 10500.40},
		{Status: models.COMMISSION_STATUS_PENDING, Amount: 8250},
		{Status: models.COMMISSION_STATUS_PAID, Amount: 15300.10},
		{Status: models.COMMISSION_STATUS_PENDING, Amount: 4999.99},
	}
}

func TestFilterCommissionsByStatus(t *testing.T) {
	commissions := commissionFixtures()

	all := filterCommissionsByStatus(commissions, "")
	assert.Len(t, all, len(commissions))

	paid := filterCommissionsByStatus(commissions, models.COMMISSION_STATUS_PAID)
	require.Len(t, paid, 2)
	for _, commission := range paid {
		assert.Equal(t, models.COMMISSION_STATUS_PAID, commission.Status)
	}
}

// The displayed total is the sum over exactly the filtered subset.
func TestCommissionTotalOverFilteredSubset(t *testing.T) {
	commissions := commissionFixtures()

	paid := filterCommissionsByStatus(commissions, models.COMMISSION_STATUS_PAID)
	assert.Equal(t, "25800.50", formatAmount(commissionTotal(paid)))

	pending := filterCommissionsByStatus(commissions, models.COMMISSION_STATUS_PENDING)
	assert.Equal(t, "13249.99", formatAmount(commissionTotal(pending)))

	assert.Equal(t, "39050.49", formatAmount(commissionTotal(commissions)))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", formatAmount(0))
	assert.Equal(t, "1234.50", formatAmount(1234.5))
	assert.Equal(t, "0.10", formatAmount(0.1))
}
