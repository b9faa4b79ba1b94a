package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-user-accounts/internal/application"
)

const keyPrefix = "user:profile:"

// NewRedisClient builds a client and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// UserCache keeps user projections as JSON strings with a TTL.
type UserCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewUserCache(rdb redis.Cmdable, ttl time.Duration) *UserCache {
	return &UserCache{rdb: rdb, ttl: ttl}
}

func Key(id string) string { return keyPrefix + id }

func (c *UserCache) Get(ctx context.Context, id string) (application.UserOutput, bool, error) {
	var out application.UserOutput
	b, err := c.rdb.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, false, fmt.Errorf("decode cached user %s: %w", id, err)
	}
	return out, true, nil
}

func (c *UserCache) Set(ctx context.Context, u application.UserOutput) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(u.ID), b, c.ttl).Err()
}

func (c *UserCache) Delete(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, Key(id)).Err()
}

var _ application.UserCache = (*UserCache)(nil)
