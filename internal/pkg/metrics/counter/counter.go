package counter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/LeadFox/app/models"
	"github.com/ManuelReschke/LeadFox/internal/pkg/cache"
	"github.com/ManuelReschke/LeadFox/internal/pkg/database"
)

const usageKeyPrefix = "enrichment:counters:usage"

func usageKey(period string) string {
	return usageKeyPrefix + ":" + period
}

// AddEnrichmentUse increments the pending enrichment counter for an account
// in Redis. The increment lands in the monthly rollup table on the next flush.
func AddEnrichmentUse(accountID uint, now time.Time) error {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(accountID), 10)
	return cache.GetClient().HIncrBy(ctx, usageKey(models.UsagePeriod(now)), field, 1).Err()
}

// PendingEnrichmentUses returns the not-yet-flushed count for an account in
// the current period. Missing hash or field means zero.
func PendingEnrichmentUses(accountID uint, now time.Time) (int64, error) {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(accountID), 10)
	val, err := cache.GetClient().HGet(ctx, usageKey(models.UsagePeriod(now)), field).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return val, nil
}

// FlushAll drains the current and previous period counters to the database.
// The previous period is included so increments made right before a month
// boundary are not stranded in Redis.
func FlushAll() error {
	now := time.Now()
	if err := flushPeriod(models.UsagePeriod(now.AddDate(0, -1, 0))); err != nil {
		return err
	}
	return flushPeriod(models.UsagePeriod(now))
}

// flushPeriod drains one period hash atomically and applies batched upserts
// to the rollup table. Uses RENAME to a temporary key for atomic drain
// without losing in-flight increments.
func flushPeriod(period string) error {
	ctx := context.Background()
	rdb := cache.GetClient()
	redisKey := usageKey(period)

	tmpKey := fmt.Sprintf("%s:tmp:%d", redisKey, time.Now().UnixNano())
	if err := rdb.Do(ctx, "RENAME", redisKey, tmpKey).Err(); err != nil {
		// If key does not exist, nothing to flush
		if strings.Contains(strings.ToLower(err.Error()), "no such key") {
			return nil
		}
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	// Ensure cleanup of tmpKey even if later steps fail
	defer rdb.Del(ctx, tmpKey)

	data, err := rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	type pair struct {
		accountID uint64
		inc       int64
	}
	pairs := make([]pair, 0, len(data))
	for k, v := range data {
		id, perr := strconv.ParseUint(k, 10, 64)
		if perr != nil {
			continue
		}
		inc, ierr := strconv.ParseInt(v, 10, 64)
		if ierr != nil || inc == 0 {
			continue
		}
		pairs = append(pairs, pair{accountID: id, inc: inc})
	}
	if len(pairs) == 0 {
		return nil
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].accountID < pairs[j].accountID })

	// INSERT ... ON DUPLICATE KEY UPDATE adds the drained delta to the
	// (account_id, period) rollup row in one statement.
	var builder strings.Builder
	args := make([]interface{}, 0, len(pairs)*3)
	builder.WriteString("INSERT INTO enrichment_usages (account_id, period, used_count, created_at, updated_at) VALUES ")
	for i, p := range pairs {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString("(?, ?, ?, NOW(), NOW())")
		args = append(args, p.accountID, period, p.inc)
	}
	builder.WriteString(" ON DUPLICATE KEY UPDATE used_count = used_count + VALUES(used_count), updated_at = NOW()")

	db := database.GetDB()
	if err := db.Exec(builder.String(), args...).Error; err != nil {
		return err
	}
	return nil
}
