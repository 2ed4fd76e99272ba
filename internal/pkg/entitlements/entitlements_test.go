package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTable(t *testing.T) {
	require.NoError(t, ValidateTable())
}

func TestTableIsExhaustive(t *testing.T) {
	for _, f := range AllFeatures {
		for _, p := range AllPlans {
			_, err := FeatureEnabled(p, f)
			require.NoError(t, err, "feature %q plan %q", f, p)
		}
	}
	for _, k := range AllLimits {
		for _, p := range AllPlans {
			_, err := LimitFor(p, k)
			require.NoError(t, err, "limit %q plan %q", k, p)
		}
	}
}

func TestFeatureEnabledUnknownKeyFailsLoud(t *testing.T) {
	_, err := FeatureEnabled(PlanEnterprise, Feature("does_not_exist"))
	require.Error(t, err)
}

func TestLimitForUnknownKeyFailsLoud(t *testing.T) {
	_, err := LimitFor(PlanFree, LimitKey("does_not_exist"))
	require.Error(t, err)
}

func TestEnterpriseHasEveryFeature(t *testing.T) {
	for _, f := range AllFeatures {
		enabled, err := FeatureEnabled(PlanEnterprise, f)
		require.NoError(t, err)
		if f == FeatureAdminRole {
			// admin_role is the only enterprise-exclusive flag, still enabled there
			assert.True(t, enabled)
			continue
		}
		assert.True(t, enabled, "feature %q should be enabled on enterprise", f)
	}
}

func TestTopTierLimitsAreUnbounded(t *testing.T) {
	for _, k := range AllLimits {
		limit, err := LimitFor(PlanEnterprise, k)
		require.NoError(t, err)
		assert.True(t, limit.Unbounded, "limit %q should be unbounded on enterprise", k)
		assert.True(t, limit.Allows(1<<40), "unbounded limit must allow any count")
	}
}

func TestLimitAllows(t *testing.T) {
	tests := []struct {
		name    string
		limit   Limit
		current int64
		want    bool
	}{
		{name: "under cap", limit: Limit{Value: 5}, current: 4, want: true},
		{name: "at cap", limit: Limit{Value: 5}, current: 5, want: false},
		{name: "over cap", limit: Limit{Value: 5}, current: 6, want: false},
		{name: "zero cap", limit: Limit{Value: 0}, current: 0, want: false},
		{name: "unbounded", limit: Limit{Unbounded: true}, current: 999999, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.limit.Allows(tt.current))
		})
	}
}

func TestNormalizePlan(t *testing.T) {
	tests := []struct {
		in   string
		want Plan
	}{
		{in: "free", want: PlanFree},
		{in: "pro", want: PlanPro},
		{in: "enterprise", want: PlanEnterprise},
		{in: "ENTERPRISE", want: PlanEnterprise},
		{in: " pro ", want: PlanPro},
		{in: "brokerage", want: PlanFree},
		{in: "", want: PlanFree},
	}
	for _, tt := range tests {
		if got := NormalizePlan(tt.in); got != tt.want {
			t.Fatalf("NormalizePlan(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlanRank(t *testing.T) {
	if PlanRank(PlanFree) >= PlanRank(PlanPro) {
		t.Fatalf("expected pro to outrank free")
	}
	if PlanRank(PlanPro) >= PlanRank(PlanEnterprise) {
		t.Fatalf("expected enterprise to outrank pro")
	}
}
