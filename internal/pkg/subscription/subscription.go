package subscription

import (
	"time"

	"github.com/ManuelReschke/LeadFox/internal/pkg/entitlements"
)

const (
	StatusActive   = "active"
	StatusTrialing = "trialing"
	StatusPastDue  = "past_due"
	StatusCanceled = "canceled"
	StatusExpired  = "expired"
)

// Subscription is the per-account plan snapshot consumed by the feature
// gate and the controllers. It is written only by the billing service;
// everything else treats it as a read-only value.
type Subscription struct {
	Plan        entitlements.Plan `json:"plan"`
	Status      string            `json:"status"`
	TrialEndsAt *time.Time        `json:"trial_ends_at,omitempty"`
}

// Default is the safe fallback when no billing record has resolved yet:
// free plan, no trial. Callers never have to special-case "loading".
func Default() Subscription {
	return Subscription{Plan: entitlements.PlanFree, Status: StatusActive}
}

// DaysUntilTrialEnds returns whole days remaining in the trial, clamped to
// zero. Zero means "no active trial", never "trial ends today".
func (s Subscription) DaysUntilTrialEnds(now time.Time) int {
	if s.TrialEndsAt == nil {
		return 0
	}
	remaining := s.TrialEndsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// OnTrial reports whether the trial is still running at the given time.
// Trial fields are only meaningful pre-conversion; once a plan is paid the
// billing service clears them.
func (s Subscription) OnTrial(now time.Time) bool {
	return s.TrialEndsAt != nil && s.TrialEndsAt.After(now)
}

// IsEntitling reports whether the subscription status still grants access
// to its paid plan. Past-due keeps access while payment retries run.
func IsEntitling(status string) bool {
	switch status {
	case StatusActive, StatusTrialing, StatusPastDue:
		return true
	default:
		return false
	}
}

// Effective resolves the plan used for gating decisions: a non-entitling
// status degrades to the free default regardless of the stored plan.
func (s Subscription) Effective() Subscription {
	if IsEntitling(s.Status) {
		return Subscription{
			Plan:        entitlements.NormalizePlan(string(s.Plan)),
			Status:      s.Status,
			TrialEndsAt: s.TrialEndsAt,
		}
	}
	return Default()
}
