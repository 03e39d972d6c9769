package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SW-Wanted/riding/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis creates the redis client used for availability caching.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}

// AvailabilityTTL bounds staleness when an invalidation is missed.
const AvailabilityTTL = 10 * time.Second

const availabilityPrefix = "cache:availability:"

// AvailabilityCache stores active-booking counts per (schedule, date) so the
// dashboards do not hit the ledger on every poll. Writers invalidate on every
// booking or schedule mutation; the short TTL is the backstop.
type AvailabilityCache struct {
	client *redis.Client
}

func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

func availabilityKey(scheduleID, date string) string {
	return availabilityPrefix + scheduleID + ":" + date
}

// GetActiveCount returns the cached active-booking count. The second return
// is false on a cache miss.
func (c *AvailabilityCache) GetActiveCount(ctx context.Context, scheduleID, date string) (int, bool, error) {
	val, err := c.client.Get(ctx, availabilityKey(scheduleID, date)).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil // cache miss
		}
		return 0, false, err
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, nil // treat corrupt entries as a miss
	}
	return count, true, nil
}

// SetActiveCount stores the active-booking count for a (schedule, date).
func (c *AvailabilityCache) SetActiveCount(ctx context.Context, scheduleID, date string, count int) error {
	return c.client.Set(ctx, availabilityKey(scheduleID, date), strconv.Itoa(count), AvailabilityTTL).Err()
}

// Invalidate drops the cached count for a single (schedule, date).
func (c *AvailabilityCache) Invalidate(ctx context.Context, scheduleID, date string) error {
	return c.client.Del(ctx, availabilityKey(scheduleID, date)).Err()
}

// InvalidateSchedule drops every cached date for a schedule. Used when a
// schedule definition changes, since capacity applies to all dates.
func (c *AvailabilityCache) InvalidateSchedule(ctx context.Context, scheduleID string) error {
	iter := c.client.Scan(ctx, 0, availabilityPrefix+scheduleID+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
