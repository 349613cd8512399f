package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "loaninvest:"

// Redis shares memoized evaluations between server processes.
type Redis struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

func NewRedis(addr string, ttl time.Duration) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{
		client: rdb,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

func (r *Redis) Ping() error {
	return r.client.Ping(r.ctx).Err()
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, redisPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key string, value string) error {
	return r.client.Set(r.ctx, redisPrefix+key, value, r.ttl).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
