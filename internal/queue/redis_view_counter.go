package queue

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

// drainingTTL bounds how long a rotated hash survives if a drain dies
// between RENAME and DEL.
const drainingTTL = time.Hour

// hashStore is the slice of Redis the counter needs.
type hashStore interface {
	incr(ctx context.Context, key, field string) error
	// rotate renames from to to and sets ttl on it. It reports false when
	// from does not exist; an error with true means only the ttl failed.
	rotate(ctx context.Context, from, to string, ttl time.Duration) (bool, error)
	readAll(ctx context.Context, key string) (map[string]string, error)
	remove(ctx context.Context, key string) error
}

// RedisViewCounter keeps pending view counts in a single Redis hash keyed by
// gig id, so several API replicas can share one buffer.
type RedisViewCounter struct {
	hashes hashStore
	key    string
}

func NewRedisViewCounter(client rueidis.Client, key string) *RedisViewCounter {
	return &RedisViewCounter{
		hashes: rueidisHashes{client: client},
		key:    key,
	}
}

func (r *RedisViewCounter) Incr(ctx context.Context, gigID string) error {
	return r.hashes.incr(ctx, r.key, gigID)
}

// Drain renames the live hash away before reading it so increments arriving
// during the drain land in a fresh hash instead of being deleted. The renamed
// hash carries a TTL and is removed on every path once it exists.
func (r *RedisViewCounter) Drain(ctx context.Context) (map[string]int64, error) {
	draining := r.key + ":draining:" + uuid.NewString()

	ok, err := r.hashes.rotate(ctx, r.key, draining, drainingTTL)
	if !ok {
		if err != nil {
			return nil, fmt.Errorf("failed to rotate view counters: %w", err)
		}
		return map[string]int64{}, nil
	}

	raw, err := r.hashes.readAll(ctx, draining)
	if err != nil {
		_ = r.hashes.remove(ctx, draining)
		return nil, fmt.Errorf("failed to read view counters: %w", err)
	}

	counts := make(map[string]int64, len(raw))
	for gigID, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		counts[gigID] = n
	}

	// The TTL reclaims the hash if this fails; the counts are already read.
	_ = r.hashes.remove(ctx, draining)

	return counts, nil
}

type rueidisHashes struct {
	client rueidis.Client
}

func (h rueidisHashes) incr(ctx context.Context, key, field string) error {
	cmd := h.client.B().Hincrby().Key(key).Field(field).Increment(1).Build()
	return h.client.Do(ctx, cmd).Error()
}

func (h rueidisHashes) rotate(ctx context.Context, from, to string, ttl time.Duration) (bool, error) {
	rename := h.client.B().Rename().Key(from).Newkey(to).Build()
	if err := h.client.Do(ctx, rename).Error(); err != nil {
		if redisErr, ok := rueidis.IsRedisErr(err); ok && strings.Contains(redisErr.Error(), "no such key") {
			return false, nil
		}
		return false, err
	}

	expire := h.client.B().Expire().Key(to).Seconds(int64(ttl / time.Second)).Build()
	if err := h.client.Do(ctx, expire).Error(); err != nil {
		return true, err
	}
	return true, nil
}

func (h rueidisHashes) readAll(ctx context.Context, key string) (map[string]string, error) {
	return h.client.Do(ctx, h.client.B().Hgetall().Key(key).Build()).AsStrMap()
}

func (h rueidisHashes) remove(ctx context.Context, key string) error {
	return h.client.Do(ctx, h.client.B().Del().Key(key).Build()).Error()
}
