package kvstore_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/kvstore"
	"github.com/orderpay/schedule/internal/schedule"
)

var _ kvstore.RedisClient = (*redis.Client)(nil)

// mapRedis answers Get and Set from a map, the way a Redis server would.
type mapRedis struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newMapRedis() *mapRedis {
	return &mapRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mapRedis) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mapRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return redis.NewStatusResult("", m.err)
	}
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	default:
		m.values[key] = fmt.Sprint(v)
	}
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	rdb := newMapRedis()
	s := kvstore.NewRedisStore(rdb)
	ctx := context.Background()

	records := schedule.BuildDefaultSchedule("2024-02", domain.Employees)
	records[7].HasShift2 = true
	records[7].Shift2Start = "14:00"
	records[7].Shift2End = "18:30"
	records[7].Orders = 4
	require.NoError(t, s.Push(ctx, "2024-02", records))

	assert.Contains(t, rdb.values, "schedule_2024-02")
	assert.Zero(t, rdb.ttls["schedule_2024-02"])

	loaded, err := s.Fetch(ctx, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestRedisStoreMissingMonth(t *testing.T) {
	records, err := kvstore.NewRedisStore(newMapRedis()).Fetch(context.Background(), "2024-02")
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestRedisStoreErrors(t *testing.T) {
	rdb := newMapRedis()
	rdb.values["schedule_2024-02"] = "{bad"
	s := kvstore.NewRedisStore(rdb)

	_, err := s.Fetch(context.Background(), "2024-02")
	assert.Error(t, err)

	down := errors.New("connection refused")
	rdb.err = down
	_, err = s.Fetch(context.Background(), "2024-02")
	assert.ErrorIs(t, err, down)
	assert.ErrorIs(t, s.Push(context.Background(), "2024-02", nil), down)
}

// TestRedisStoreLive runs against a real server when REDIS_ADDR is set.
func TestRedisStoreLive(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	const month = schedule.MonthKey("1999-02")
	t.Cleanup(func() { rdb.Del(context.Background(), kvstore.Key(month)) })

	s := kvstore.NewRedisStore(rdb)
	records := schedule.BuildDefaultSchedule(month, domain.Employees)
	records[0].Orders = 3
	require.NoError(t, s.Push(ctx, month, records))

	loaded, err := s.Fetch(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}
