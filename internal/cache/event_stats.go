package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"booth-pos-backend/internal/model"

	"github.com/redis/go-redis/v9"
)

// statsTTL caps staleness even if an invalidation is lost.
const statsTTL = 30 * time.Second

type EventStatsCache interface {
	// Get 回傳快取的儀表盤；miss 時回傳 (nil, nil)
	Get(ctx context.Context, eventID int) (*model.EventStats, error)
	Set(ctx context.Context, eventID int, stats *model.EventStats) error
	Invalidate(ctx context.Context, eventID int) error
}

type RedisEventStatsCache struct {
	client *redis.Client
}

func NewEventStatsCache(client *redis.Client) EventStatsCache {
	return &RedisEventStatsCache{
		client: client,
	}
}

func (c *RedisEventStatsCache) statsKey(eventID int) string {
	return fmt.Sprintf("event:%d:stats", eventID)
}

func (c *RedisEventStatsCache) Get(ctx context.Context, eventID int) (*model.EventStats, error) {
	payload, err := c.client.Get(ctx, c.statsKey(eventID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats model.EventStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, fmt.Errorf("invalid cached stats: %w", err)
	}

	return &stats, nil
}

func (c *RedisEventStatsCache) Set(ctx context.Context, eventID int, stats *model.EventStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.statsKey(eventID), payload, statsTTL).Err()
}

func (c *RedisEventStatsCache) Invalidate(ctx context.Context, eventID int) error {
	return c.client.Del(ctx, c.statsKey(eventID)).Err()
}
