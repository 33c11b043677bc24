package testutil

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient keeps sorted sets in memory so leaderboard tests run
// without a server. Override a Func field to force failures.
type MockRedisClient struct {
	ExistFunc               func(ctx context.Context, key string) (bool, error)
	DelFunc                 func(ctx context.Context, key ...string) error
	ZAddFunc                func(ctx context.Context, key string, z redis.Z) error
	ZIncrByFunc             func(ctx context.Context, key string, incr int64, member string) error
	ZRevRangeWithScoresFunc func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZRevRankFunc            func(ctx context.Context, key string, member string) (uint64, error)

	sets map[string]map[string]float64
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{sets: map[string]map[string]float64{}}
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	_, ok := m.sets[key]
	return ok, nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	for _, k := range key {
		delete(m.sets, k)
	}
	return nil
}

func (m *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	if m.ZAddFunc != nil {
		return m.ZAddFunc(ctx, key, z)
	}

	member, ok := z.Member.(string)
	if !ok {
		return nil
	}

	m.set(key)[member] = z.Score
	return nil
}

func (m *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	if m.ZIncrByFunc != nil {
		return m.ZIncrByFunc(ctx, key, incr, member)
	}

	m.set(key)[member] += float64(incr)
	return nil
}

func (m *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	if m.ZRevRangeWithScoresFunc != nil {
		return m.ZRevRangeWithScoresFunc(ctx, key, offset, limit)
	}

	zs := m.sorted(key)
	if offset >= len(zs) {
		return nil, nil
	}

	end := offset + limit
	if end > len(zs) {
		end = len(zs)
	}

	return zs[offset:end], nil
}

func (m *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	if m.ZRevRankFunc != nil {
		return m.ZRevRankFunc(ctx, key, member)
	}

	for i, z := range m.sorted(key) {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

func (m *MockRedisClient) set(key string) map[string]float64 {
	if m.sets == nil {
		m.sets = map[string]map[string]float64{}
	}

	if _, ok := m.sets[key]; !ok {
		m.sets[key] = map[string]float64{}
	}

	return m.sets[key]
}

func (m *MockRedisClient) sorted(key string) []redis.Z {
	zs := []redis.Z{}
	for member, score := range m.sets[key] {
		zs = append(zs, redis.Z{Member: member, Score: score})
	}

	sort.Slice(zs, func(i, j int) bool {
		if zs[i].Score != zs[j].Score {
			return zs[i].Score > zs[j].Score
		}
		return zs[i].Member.(string) < zs[j].Member.(string)
	})

	return zs
}
