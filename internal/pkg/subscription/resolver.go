package subscription

import (
	"fmt"
	"time"

	"github.com/ManuelReschke/LeadFox/app/models"
	"github.com/ManuelReschke/LeadFox/internal/pkg/cache"
	"github.com/ManuelReschke/LeadFox/internal/pkg/entitlements"
	"gorm.io/gorm"
)

// snapshotTTL bounds how stale a cached subscription may be after a plan
// change lands via webhook. Invalidate shortens that to zero on the write
// path; the TTL covers crashed invalidations.
const snapshotTTL = 60 * time.Second

func cacheKey(userID uint) string {
	return fmt.Sprintf("subscription:snapshot:%d", userID)
}

// FromSettings builds the gating snapshot from the stored billing columns.
// An expired trial on a still-trialing row degrades to the free default
// instead of keeping the paid plan alive.
func FromSettings(us *models.UserSettings, now time.Time) Subscription {
	if us == nil {
		return Default()
	}
	sub := Subscription{
		Plan:        entitlements.NormalizePlan(us.Plan),
		Status:      us.SubscriptionStatus,
		TrialEndsAt: us.TrialEndsAt,
	}
	if sub.Status == StatusTrialing && !sub.OnTrial(now) {
		return Default()
	}
	return sub.Effective()
}

// Resolve returns the subscription snapshot for a user. Never blocks on an
// unresolved billing state: any read failure yields the free default so
// callers do not special-case loading or errors.
func Resolve(db *gorm.DB, userID uint) Subscription {
	if userID == 0 || db == nil {
		return Default()
	}

	var cached Subscription
	if err := cache.GetJSON(cacheKey(userID), &cached); err == nil {
		return cached.Effective()
	}

	us, err := models.GetOrCreateUserSettings(db, userID)
	if err != nil {
		return Default()
	}

	sub := FromSettings(us, time.Now())
	// Best effort; a cold cache just means another DB read next request.
	_ = cache.SetJSON(cacheKey(userID), sub, snapshotTTL)
	return sub
}

// Invalidate drops the cached snapshot after the billing service changed
// the stored plan. Only the billing write path calls this.
func Invalidate(userID uint) {
	_ = cache.Delete(cacheKey(userID))
}
