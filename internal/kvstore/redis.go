package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
)

// RedisClient is the subset of *redis.Client the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps each month as one JSON string value.
type RedisStore struct {
	rdb RedisClient
}

func NewRedisStore(rdb RedisClient) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Fetch(ctx context.Context, month schedule.MonthKey) ([]domain.DayRecord, error) {
	data, err := s.rdb.Get(ctx, Key(month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(month, data)
}

func (s *RedisStore) Push(ctx context.Context, month schedule.MonthKey, records []domain.DayRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, Key(month), data, 0).Err()
}
