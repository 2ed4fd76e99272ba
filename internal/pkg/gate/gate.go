package gate

import (
	"github.com/ManuelReschke/LeadFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/LeadFox/internal/pkg/subscription"
)

// Reason tags a blocked decision so callers can show the matching upsell
// message.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonPlanLock Reason = "plan_lock"
	ReasonRoleLock Reason = "role_lock"
	ReasonQuota    Reason = "quota"
)

// UpgradeURL is where blocked callers send the user. Decisions carry it so
// response payloads stay uniform across controllers.
const UpgradeURL = "/billing/upgrade"

// Decision is the result of evaluating a feature request against a
// subscription. A pure value: evaluation has no side effects and the same
// inputs always produce the same decision.
type Decision struct {
	Allowed    bool   `json:"allowed"`
	Reason     Reason `json:"reason,omitempty"`
	UpgradeURL string `json:"upgrade_url,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func block(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason, UpgradeURL: UpgradeURL}
}

// Evaluate is the single choke point for premium-feature checks. Controllers
// must never compare plans ad hoc; they ask the gate. An unknown feature key
// is a configuration error that propagates, never a silent decision.
func Evaluate(sub subscription.Subscription, feature entitlements.Feature) (Decision, error) {
	enabled, err := entitlements.FeatureEnabled(sub.Effective().Plan, feature)
	if err != nil {
		return Decision{}, err
	}
	if !enabled {
		return block(ReasonPlanLock), nil
	}
	return allow(), nil
}

// CheckQuota evaluates a numeric limit for the subscription's plan against
// the current count. Blocking reason is always quota.
func CheckQuota(sub subscription.Subscription, key entitlements.LimitKey, current int64) (Decision, error) {
	limit, err := entitlements.LimitFor(sub.Effective().Plan, key)
	if err != nil {
		return Decision{}, err
	}
	if !limit.Allows(current) {
		return block(ReasonQuota), nil
	}
	return allow(), nil
}

// roleFeature maps gated roster roles to their feature flags. The plain
// agent role is never gated.
func roleFeature(role string) (entitlements.Feature, bool) {
	switch role {
	case "manager":
		return entitlements.FeatureManagerRole, true
	case "admin":
		return entitlements.FeatureAdminRole, true
	default:
		return "", false
	}
}

// CanAddTeamMember combines the team-size quota with the role lock for the
// member being added. Both conditions are evaluated; the role lock wins so
// the UI shows the more specific message when both would block.
func CanAddTeamMember(sub subscription.Subscription, activeCount int64, role string) (Decision, error) {
	if feature, gated := roleFeature(role); gated {
		d, err := Evaluate(sub, feature)
		if err != nil {
			return Decision{}, err
		}
		if !d.Allowed {
			return block(ReasonRoleLock), nil
		}
	}
	return CheckQuota(sub, entitlements.LimitTeamSize, activeCount)
}

// CanChangeRole gates a role change on an existing member. Quota is not
// consulted; the seat is already taken.
func CanChangeRole(sub subscription.Subscription, role string) (Decision, error) {
	feature, gated := roleFeature(role)
	if !gated {
		return allow(), nil
	}
	d, err := Evaluate(sub, feature)
	if err != nil {
		return Decision{}, err
	}
	if !d.Allowed {
		return block(ReasonRoleLock), nil
	}
	return allow(), nil
}

// CanUseEnrichment combines the data-enrichment feature flag with the
// monthly lookup quota.
func CanUseEnrichment(sub subscription.Subscription, usedThisMonth int64) (Decision, error) {
	d, err := Evaluate(sub, entitlements.FeatureDataEnrichment)
	if err != nil {
		return Decision{}, err
	}
	if !d.Allowed {
		return d, nil
	}
	return CheckQuota(sub, entitlements.LimitEnrichmentMonthly, usedThisMonth)
}
