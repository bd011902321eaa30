package book

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares the book between server instances. Entries expire after ttl;
// zero keeps them forever.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (b *Redis) key(history string) string {
	return fmt.Sprintf("book:%s", history)
}

func (b *Redis) Lookup(ctx context.Context, key string) (int, bool, error) {
	val, err := b.rdb.Get(ctx, b.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	index, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("book: corrupt entry %q: %w", key, err)
	}
	return index, true, nil
}

func (b *Redis) Store(ctx context.Context, key string, index int) error {
	return b.rdb.Set(ctx, b.key(key), index, b.ttl).Err()
}
