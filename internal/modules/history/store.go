package history

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// TimeSeriesStore is the ordered key-value contract the tracker depends on:
// an atomic marker with expiry for daily de-duplication, plus a per-key
// collection sorted by timestamp supporting insert, range query and range
// delete. Any store with these four primitives satisfies the contract.
type TimeSeriesStore interface {
	// MarkOnce sets key with the given TTL only if it does not exist.
	// Returns true when this caller won the write.
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Insert adds member to the sorted collection at key, scored by ts.
	Insert(ctx context.Context, key string, ts time.Time, member string) error

	// RangeSince returns all members scored at or after from, ascending.
	RangeSince(ctx context.Context, key string, from time.Time) ([]string, error)

	// DeleteBefore removes members scored strictly before cutoff.
	DeleteBefore(ctx context.Context, key string, cutoff time.Time) error
}

// RedisStore implements TimeSeriesStore on a Redis sorted set per key, with
// plain TTL'd keys for the markers.
type RedisStore struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRedisStore creates a Redis-backed time-series store.
func NewRedisStore(client *redis.Client, log zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		log:    log.With().Str("component", "timeseries_store").Logger(),
	}
}

func (s *RedisStore) MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, "1", ttl).Result()
}

func (s *RedisStore) Insert(ctx context.Context, key string, ts time.Time, member string) error {
	return s.client.ZAdd(ctx, key, &redis.Z{
		Score:  float64(ts.Unix()),
		Member: member,
	}).Err()
}

func (s *RedisStore) RangeSince(ctx context.Context, key string, from time.Time) ([]string, error) {
	return s.client.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min: strconv.FormatInt(from.Unix(), 10),
		Max: "+inf",
	}).Result()
}

func (s *RedisStore) DeleteBefore(ctx context.Context, key string, cutoff time.Time) error {
	return s.client.ZRemRangeByScore(ctx, key, "-inf", "("+strconv.FormatInt(cutoff.Unix(), 10)).Err()
}
