package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
)

// SnapshotCache holds the month payloads served by GET /schedule.
type SnapshotCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, month schedule.MonthKey) (records []domain.DayRecord, ok bool, err error)
	Set(ctx context.Context, month schedule.MonthKey, records []domain.DayRecord) error
	Invalidate(ctx context.Context, months ...schedule.MonthKey) error
}

func Key(month schedule.MonthKey) string {
	return "schedule:snapshot:" + month.String()
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, month schedule.MonthKey) ([]domain.DayRecord, bool, error) {
	data, err := c.rdb.Get(ctx, Key(month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	records := []domain.DayRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, err
	}
	return records, true, nil
}

func (c *RedisCache) Set(ctx context.Context, month schedule.MonthKey, records []domain.DayRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(month), data, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, months ...schedule.MonthKey) error {
	if len(months) == 0 {
		return nil
	}
	keys := make([]string, 0, len(months))
	for _, m := range months {
		keys = append(keys, Key(m))
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Nop never hits. It stands in when redis is disabled.
type Nop struct{}

func (Nop) Get(context.Context, schedule.MonthKey) ([]domain.DayRecord, bool, error) {
	return nil, false, nil
}

func (Nop) Set(context.Context, schedule.MonthKey, []domain.DayRecord) error { return nil }

func (Nop) Invalidate(context.Context, ...schedule.MonthKey) error { return nil }
