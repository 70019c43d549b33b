// Package cache puts an optional Redis response cache in front of a Fetcher.
// A loader behind it still sees exactly one Get per attempt.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	httpc "travel-discovery/internal/common/http"
	"travel-discovery/internal/common/logger"
	"travel-discovery/internal/common/metrics"
)

const DefaultPrefix = "discovery:resp:"

// CachingFetcher serves repeated GETs for the same URL from Redis. Only
// responses a loader could decode (status < 400, non-empty body) are stored.
// Any Redis failure falls through to the wrapped fetcher.
type CachingFetcher struct {
	redis  *RedisClient
	next   httpc.Fetcher
	ttl    time.Duration
	prefix string
	log    logger.Logger
}

type entry struct {
	StatusCode int    `json:"statusCode"`
	Body       []byte `json:"body"`
}

// NewCachingFetcher wraps next. A zero ttl stores entries without expiry; an
// empty prefix uses DefaultPrefix.
func NewCachingFetcher(rc *RedisClient, next httpc.Fetcher, ttl time.Duration, prefix string, log logger.Logger) *CachingFetcher {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &CachingFetcher{
		redis:  rc,
		next:   next,
		ttl:    ttl,
		prefix: prefix,
		log:    log,
	}
}

// Key returns the Redis key a URL is cached under.
func (f *CachingFetcher) Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return f.prefix + hex.EncodeToString(sum[:])
}

func (f *CachingFetcher) Get(ctx context.Context, url string) (*httpc.Response, error) {
	key := f.Key(url)

	if resp, ok := f.lookup(ctx, key, url); ok {
		metrics.CacheHits.Inc()
		return resp, nil
	}
	metrics.CacheMisses.Inc()

	resp, err := f.next.Get(ctx, url)
	if err != nil || resp == nil {
		return resp, err
	}
	if resp.StatusCode < 400 && len(resp.Body) > 0 {
		f.store(ctx, key, url, resp)
	}
	return resp, nil
}

// Invalidate drops the cached response for url, if any. Get calls it for
// entries it cannot read.
func (f *CachingFetcher) Invalidate(ctx context.Context, url string) error {
	return f.redis.Del(ctx, f.Key(url))
}

func (f *CachingFetcher) lookup(ctx context.Context, key, url string) (*httpc.Response, bool) {
	raw, err := f.redis.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			f.log.WithError(err).Warn("response cache unavailable, fetching from network", map[string]interface{}{"url": url})
		}
		return nil, false
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil || len(e.Body) == 0 {
		f.log.Warn("discarding unreadable cache entry", map[string]interface{}{"url": url, "key": key})
		if err := f.Invalidate(ctx, url); err != nil {
			f.log.WithError(err).Warn("failed to drop unreadable cache entry", map[string]interface{}{"key": key})
		}
		return nil, false
	}

	f.log.Debug("response served from cache", map[string]interface{}{"url": url})
	return &httpc.Response{StatusCode: e.StatusCode, Body: e.Body}, true
}

func (f *CachingFetcher) store(ctx context.Context, key, url string, resp *httpc.Response) {
	data, err := json.Marshal(entry{StatusCode: resp.StatusCode, Body: resp.Body})
	if err != nil {
		return
	}
	if err := f.redis.Set(ctx, key, string(data), f.ttl); err != nil {
		f.log.WithError(err).Warn("failed to cache response", map[string]interface{}{"url": url})
	}
}
