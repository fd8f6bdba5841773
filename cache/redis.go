package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis implements Cache over a Redis server. Misses and transport
// errors look the same to callers; both just trigger a recomputation.
type Redis struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedis(addr string) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
