// Package cache is the statement cache capability. Statements are expensive
// aggregations, so read paths cache the serialized response and every ledger
// mutation purges the affected statement prefixes.
//
// Every operation is best-effort: an unreachable store degrades to a miss or
// a no-op and must never fail the surrounding request.
package cache

import (
	"context"
	"os"
	"strconv"
	"time"
)

type Client interface {
	// Get returns the cached blob and whether it was found. Any store
	// error reports a miss.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores the blob with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// DeletePrefix removes every key starting with prefix, purging all
	// query-parameter variants of one logical resource.
	DeletePrefix(ctx context.Context, prefix string)
}

// TTL is the fixed expiry window that bounds how stale a cached statement
// can get when invalidation is missed.
func TTL() time.Duration {
	seconds, err := strconv.Atoi(os.Getenv("CACHE_TTL_SECONDS"))
	if err != nil || seconds <= 0 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}

// NoopClient always misses. Used in tests and when running without redis.
type NoopClient struct{}

func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

func (*NoopClient) Get(ctx context.Context, key string) ([]byte, bool) {
	return nil, false
}

func (*NoopClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
}

func (*NoopClient) DeletePrefix(ctx context.Context, prefix string) {
}
