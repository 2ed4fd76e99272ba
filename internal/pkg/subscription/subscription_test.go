package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/LeadFox/internal/pkg/entitlements"
)

func TestDefaultIsFreeWithoutTrial(t *testing.T) {
	sub := Default()
	assert.Equal(t, entitlements.PlanFree, sub.Plan)
	assert.Nil(t, sub.TrialEndsAt)
	assert.Equal(t, 0, sub.DaysUntilTrialEnds(time.Now()))
}

func TestDaysUntilTrialEnds(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ends *time.Time
		want int
	}{
		{name: "no trial", ends: nil, want: 0},
		{name: "one day in the past", ends: timePtr(now.Add(-24 * time.Hour)), want: 0},
		{name: "expired a moment ago", ends: timePtr(now.Add(-time.Second)), want: 0},
		{name: "half a day left rounds up", ends: timePtr(now.Add(12 * time.Hour)), want: 1},
		{name: "exactly seven days", ends: timePtr(now.Add(7 * 24 * time.Hour)), want: 7},
		{name: "seven days and change", ends: timePtr(now.Add(7*24*time.Hour + time.Hour)), want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := Subscription{Plan: entitlements.PlanPro, Status: StatusTrialing, TrialEndsAt: tt.ends}
			assert.Equal(t, tt.want, sub.DaysUntilTrialEnds(now))
			assert.GreaterOrEqual(t, sub.DaysUntilTrialEnds(now), 0)
		})
	}
}

func TestOnTrial(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, Subscription{}.OnTrial(now))
	assert.False(t, Subscription{TrialEndsAt: &past}.OnTrial(now))
	assert.True(t, Subscription{TrialEndsAt: &future}.OnTrial(now))
}

func TestIsEntitling(t *testing.T) {
	for _, status := range []string{StatusActive, StatusTrialing, StatusPastDue} {
		assert.True(t, IsEntitling(status), "status %q should entitle", status)
	}
	for _, status := range []string{StatusCanceled, StatusExpired, "paused", ""} {
		assert.False(t, IsEntitling(status), "status %q should not entitle", status)
	}
}

func TestEffectiveDegradesNonEntitlingToFree(t *testing.T) {
	sub := Subscription{Plan: entitlements.PlanEnterprise, Status: StatusCanceled}
	eff := sub.Effective()
	assert.Equal(t, entitlements.PlanFree, eff.Plan)
	assert.Nil(t, eff.TrialEndsAt)
}

func TestEffectiveNormalizesStoredPlan(t *testing.T) {
	sub := Subscription{Plan: "PRO", Status: StatusActive}
	assert.Equal(t, entitlements.PlanPro, sub.Effective().Plan)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
