package entitlements

import (
	"fmt"
	"strings"
)

type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// AllPlans lists every plan the product knows, lowest tier first.
var AllPlans = []Plan{PlanFree, PlanPro, PlanEnterprise}

// Feature identifies a gated product capability.
type Feature string

const (
	FeatureAdvancedAssignmentRules Feature = "advanced_assignment_rules"
	FeaturePushNotifications       Feature = "push_notifications"
	FeatureSlackNotifications      Feature = "slack_notifications"
	FeatureManagerRole             Feature = "manager_role"
	FeatureAdminRole               Feature = "admin_role"
	FeatureDataEnrichment          Feature = "data_enrichment"
	FeatureCommissionReports       Feature = "commission_reports"
)

// AllFeatures lists every feature flag referenced anywhere in the product.
// The feature table below must carry an entry for each of these per plan.
var AllFeatures = []Feature{
	FeatureAdvancedAssignmentRules,
	FeaturePushNotifications,
	FeatureSlackNotifications,
	FeatureManagerRole,
	FeatureAdminRole,
	FeatureDataEnrichment,
	FeatureCommissionReports,
}

// LimitKey identifies a numeric plan limit.
type LimitKey string

const (
	LimitTeamSize          LimitKey = "team_size"
	LimitEnrichmentMonthly LimitKey = "enrichment_monthly"
	LimitActiveLeads       LimitKey = "active_leads"
)

// AllLimits lists every numeric limit the product enforces.
var AllLimits = []LimitKey{LimitTeamSize, LimitEnrichmentMonthly, LimitActiveLeads}

// Limit is a resolved numeric cap. Unbounded limits carry no usable Value;
// callers must check Unbounded before comparing counts against Value.
type Limit struct {
	Value     int64
	Unbounded bool
}

// Allows reports whether adding one more to the current count stays inside
// the limit.
func (l Limit) Allows(current int64) bool {
	if l.Unbounded {
		return true
	}
	return current < l.Value
}

var unbounded = Limit{Unbounded: true}

// featureTable is the single source of truth mapping plans to enabled
// features. Every Feature must have a row and every row must cover every
// plan; ValidateTable enforces that at startup.
var featureTable = map[Feature]map[Plan]bool{
	FeatureAdvancedAssignmentRules: {PlanFree: false, PlanPro: true, PlanEnterprise: true},
	FeaturePushNotifications:       {PlanFree: false, PlanPro: true, PlanEnterprise: true},
	FeatureSlackNotifications:      {PlanFree: false, PlanPro: true, PlanEnterprise: true},
	FeatureManagerRole:             {PlanFree: false, PlanPro: true, PlanEnterprise: true},
	FeatureAdminRole:               {PlanFree: false, PlanPro: false, PlanEnterprise: true},
	FeatureDataEnrichment:          {PlanFree: false, PlanPro: true, PlanEnterprise: true},
	FeatureCommissionReports:       {PlanFree: true, PlanPro: true, PlanEnterprise: true},
}

// limitTable maps plans to numeric caps. The top tier is unbounded instead
// of a large sentinel to avoid off-by-one caps.
var limitTable = map[LimitKey]map[Plan]Limit{
	LimitTeamSize: {
		PlanFree:       {Value: 5},
		PlanPro:        {Value: 25},
		PlanEnterprise: unbounded,
	},
	LimitEnrichmentMonthly: {
		PlanFree:       {Value: 0},
		PlanPro:        {Value: 100},
		PlanEnterprise: unbounded,
	},
	LimitActiveLeads: {
		PlanFree:       {Value: 100},
		PlanPro:        {Value: 2500},
		PlanEnterprise: unbounded,
	},
}

// FeatureEnabled reports whether the given plan includes the feature.
// An unknown feature key is a configuration error, never a silent allow
// or deny.
func FeatureEnabled(plan Plan, feature Feature) (bool, error) {
	row, ok := featureTable[feature]
	if !ok {
		return false, fmt.Errorf("entitlements: unknown feature key %q", feature)
	}
	enabled, ok := row[NormalizePlan(string(plan))]
	if !ok {
		return false, fmt.Errorf("entitlements: feature %q has no entry for plan %q", feature, plan)
	}
	return enabled, nil
}

// LimitFor resolves the numeric cap for a plan. Unknown limit keys fail loud.
func LimitFor(plan Plan, key LimitKey) (Limit, error) {
	row, ok := limitTable[key]
	if !ok {
		return Limit{}, fmt.Errorf("entitlements: unknown limit key %q", key)
	}
	limit, ok := row[NormalizePlan(string(plan))]
	if !ok {
		return Limit{}, fmt.Errorf("entitlements: limit %q has no entry for plan %q", key, plan)
	}
	return limit, nil
}

// NormalizePlan maps arbitrary stored plan strings onto the canonical enum.
// Anything unrecognized degrades to free.
func NormalizePlan(plan string) Plan {
	switch Plan(strings.ToLower(strings.TrimSpace(plan))) {
	case PlanPro:
		return PlanPro
	case PlanEnterprise:
		return PlanEnterprise
	default:
		return PlanFree
	}
}

// PlanRank orders plans for upgrade/downgrade comparisons.
func PlanRank(plan Plan) int {
	switch NormalizePlan(string(plan)) {
	case PlanEnterprise:
		return 2
	case PlanPro:
		return 1
	default:
		return 0
	}
}

// ValidateTable checks that the feature and limit tables are exhaustive:
// every known feature and limit has an entry for every known plan. Called
// once at startup; a hole in the table must never reach a runtime default.
func ValidateTable() error {
	for _, f := range AllFeatures {
		row, ok := featureTable[f]
		if !ok {
			return fmt.Errorf("entitlements: feature %q missing from table", f)
		}
		for _, p := range AllPlans {
			if _, ok := row[p]; !ok {
				return fmt.Errorf("entitlements: feature %q missing entry for plan %q", f, p)
			}
		}
	}
	for _, k := range AllLimits {
		row, ok := limitTable[k]
		if !ok {
			return fmt.Errorf("entitlements: limit %q missing from table", k)
		}
		for _, p := range AllPlans {
			if _, ok := row[p]; !ok {
				return fmt.Errorf("entitlements: limit %q missing entry for plan %q", k, p)
			}
		}
	}
	return nil
}
