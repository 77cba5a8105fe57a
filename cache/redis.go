package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisClient serves the statement cache from redis. A nil redis handle is
// allowed and behaves like NoopClient, so the server can run without redis.
type RedisClient struct {
	rdb    *redis.Client
	logger *logrus.Logger
}

func NewRedisClient(rdb *redis.Client, logger *logrus.Logger) *RedisClient {
	return &RedisClient{rdb: rdb, logger: logger}
}

func (c *RedisClient) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}
	value, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.debug("cache get failed", key, err)
		}
		return nil, false
	}
	return value, true
}

func (c *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.debug("cache set failed", key, err)
	}
}

func (c *RedisClient) DeletePrefix(ctx context.Context, prefix string) {
	if c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.debug("cache delete failed", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		c.debug("cache scan failed", prefix, err)
	}
}

func (c *RedisClient) debug(msg string, key string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.WithFields(logrus.Fields{
		"key":   key,
		"error": err.Error(),
	}).Debug(msg)
}
