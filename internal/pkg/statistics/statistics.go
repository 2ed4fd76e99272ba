package statistics

import (
	"fmt"
	"log"
	"time"

	"github.com/ManuelReschke/LeadFox/app/models"
	"github.com/ManuelReschke/LeadFox/internal/pkg/cache"
	"github.com/ManuelReschke/LeadFox/internal/pkg/database"
)

const (
	cacheKeyAccount = "statistics:account:%d"
	cacheExpiration = 5 * time.Minute
)

// AccountStats is the cached dashboard statistics blob for one account.
type AccountStats struct {
	TotalLeads    int64 `json:"total_leads"`
	NewLeadsToday int64 `json:"new_leads_today"`
	OpenLeads     int64 `json:"open_leads"`
	ActiveAgents  int64 `json:"active_agents"`
}

func accountKey(accountID uint) string {
	return fmt.Sprintf(cacheKeyAccount, accountID)
}

// GetAccountStats returns the dashboard statistics for an account, served
// from the cache when fresh. A cache miss recomputes from the database and
// repopulates the blob.
func GetAccountStats(accountID uint) AccountStats {
	var stats AccountStats
	if err := cache.GetJSON(accountKey(accountID), &stats); err == nil {
		return stats
	}

	stats = computeAccountStats(accountID)
	if err := cache.SetJSON(accountKey(accountID), stats, cacheExpiration); err != nil {
		log.Printf("Error caching account statistics for %d: %v", accountID, err)
	}
	return stats
}

// InvalidateAccountStats drops the cached blob after a write that changes
// the counts, e.g. a new lead or a roster change.
func InvalidateAccountStats(accountID uint) {
	_ = cache.Delete(accountKey(accountID))
}

func computeAccountStats(accountID uint) AccountStats {
	db := database.GetDB()
	var stats AccountStats
	if db == nil {
		return stats
	}

	if err := db.Model(&models.Lead{}).Where("account_id = ?", accountID).Count(&stats.TotalLeads).Error; err != nil {
		log.Printf("Error counting total leads: %v", err)
	}

	todayStart := time.Now().Truncate(24 * time.Hour)
	if err := db.Model(&models.Lead{}).
		Where("account_id = ? AND created_at >= ?", accountID, todayStart).
		Count(&stats.NewLeadsToday).Error; err != nil {
		log.Printf("Error counting today's leads: %v", err)
	}

	if err := db.Model(&models.Lead{}).
		Where("account_id = ? AND stage NOT IN ?", accountID, []string{models.LEAD_STAGE_CLOSED, models.LEAD_STAGE_LOST}).
		Count(&stats.OpenLeads).Error; err != nil {
		log.Printf("Error counting open leads: %v", err)
	}

	if err := db.Model(&models.TeamMember{}).
		Where("account_id = ? AND status = ?", accountID, models.TEAM_STATUS_ACTIVE).
		Count(&stats.ActiveAgents).Error; err != nil {
		log.Printf("Error counting active agents: %v", err)
	}

	return stats
}
