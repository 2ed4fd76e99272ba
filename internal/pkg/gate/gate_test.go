package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/LeadFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/LeadFox/internal/pkg/subscription"
)

func subOn(plan entitlements.Plan) subscription.Subscription {
	return subscription.Subscription{Plan: plan, Status: subscription.StatusActive}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	for _, plan := range entitlements.AllPlans {
		for _, feature := range entitlements.AllFeatures {
			first, err := Evaluate(subOn(plan), feature)
			require.NoError(t, err)
			for i := 0; i < 3; i++ {
				again, err := Evaluate(subOn(plan), feature)
				require.NoError(t, err)
				assert.Equal(t, first, again, "plan %q feature %q", plan, feature)
			}
		}
	}
}

func TestFreePlanBlocksPremiumFeatures(t *testing.T) {
	premium := []entitlements.Feature{
		entitlements.FeatureAdvancedAssignmentRules,
		entitlements.FeaturePushNotifications,
		entitlements.FeatureSlackNotifications,
		entitlements.FeatureManagerRole,
		entitlements.FeatureAdminRole,
		entitlements.FeatureDataEnrichment,
	}
	for _, feature := range premium {
		d, err := Evaluate(subOn(entitlements.PlanFree), feature)
		require.NoError(t, err)
		assert.False(t, d.Allowed, "feature %q must be blocked on free", feature)
		assert.Equal(t, ReasonPlanLock, d.Reason)
		assert.Equal(t, UpgradeURL, d.UpgradeURL)
	}
}

func TestEnterpriseAllowsEverything(t *testing.T) {
	for _, feature := range entitlements.AllFeatures {
		d, err := Evaluate(subOn(entitlements.PlanEnterprise), feature)
		require.NoError(t, err)
		assert.True(t, d.Allowed, "feature %q must be allowed on enterprise", feature)
		assert.Equal(t, ReasonNone, d.Reason)
	}
}

func TestEvaluateUnknownFeatureErrors(t *testing.T) {
	_, err := Evaluate(subOn(entitlements.PlanPro), entitlements.Feature("nope"))
	require.Error(t, err)
}

func TestTeamQuotaAtCap(t *testing.T) {
	// free plan caps team size at 5
	d, err := CanAddTeamMember(subOn(entitlements.PlanFree), 5, "agent")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonQuota, d.Reason)
}

func TestTeamQuotaUnderCap(t *testing.T) {
	d, err := CanAddTeamMember(subOn(entitlements.PlanFree), 4, "agent")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRoleLockBeatsEmptyRoster(t *testing.T) {
	// manager role is pro+, so a free team with zero members still blocks
	d, err := CanAddTeamMember(subOn(entitlements.PlanFree), 0, "manager")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonRoleLock, d.Reason)
}

func TestAdminRoleRequiresEnterprise(t *testing.T) {
	d, err := CanAddTeamMember(subOn(entitlements.PlanPro), 0, "admin")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonRoleLock, d.Reason)

	d, err = CanAddTeamMember(subOn(entitlements.PlanEnterprise), 0, "admin")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestEnterpriseTeamIsUnbounded(t *testing.T) {
	d, err := CanAddTeamMember(subOn(entitlements.PlanEnterprise), 100000, "manager")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestCanChangeRole(t *testing.T) {
	d, err := CanChangeRole(subOn(entitlements.PlanFree), "manager")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonRoleLock, d.Reason)

	d, err = CanChangeRole(subOn(entitlements.PlanFree), "agent")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestEnrichmentGate(t *testing.T) {
	// free: feature itself locked
	d, err := CanUseEnrichment(subOn(entitlements.PlanFree), 0)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonPlanLock, d.Reason)

	// pro: allowed until the monthly quota runs out
	d, err = CanUseEnrichment(subOn(entitlements.PlanPro), 99)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = CanUseEnrichment(subOn(entitlements.PlanPro), 100)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonQuota, d.Reason)

	// enterprise: unbounded
	d, err = CanUseEnrichment(subOn(entitlements.PlanEnterprise), 1000000)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestUpsellScenarioPlanChange(t *testing.T) {
	// free blocks advanced assignment rules, switching the plan to pro is
	// the only state change needed to flip the decision
	free := subscription.Subscription{Plan: entitlements.PlanFree, Status: subscription.StatusActive}
	d, err := Evaluate(free, entitlements.FeatureAdvancedAssignmentRules)
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	pro := free
	pro.Plan = entitlements.PlanPro
	d, err = Evaluate(pro, entitlements.FeatureAdvancedAssignmentRules)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestCanceledSubscriptionGatesAsFree(t *testing.T) {
	sub := subscription.Subscription{Plan: entitlements.PlanEnterprise, Status: subscription.StatusCanceled}
	d, err := Evaluate(sub, entitlements.FeatureSlackNotifications)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestTrialingSubscriptionKeepsPaidPlan(t *testing.T) {
	ends := time.Now().Add(72 * time.Hour)
	sub := subscription.Subscription{Plan: entitlements.PlanPro, Status: subscription.StatusTrialing, TrialEndsAt: &ends}
	d, err := Evaluate(sub, entitlements.FeaturePushNotifications)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}
