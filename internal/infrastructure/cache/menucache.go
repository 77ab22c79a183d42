// Package cache provides the Redis-backed menu cache. Caching is a
// best-effort optimization to bound backend load; cache errors are absorbed
// and never affect content resolution.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"rosmarino/internal/domain/menu"
	"rosmarino/internal/infrastructure/content"
	"rosmarino/internal/shared/logger"
)

const menuCachePrefix = "menu:"

// CachedProvider wraps a content provider with a Redis cache keyed by locale.
// Concurrent cold-start fetches for the same locale are collapsed into a
// single backend call via singleflight.
type CachedProvider struct {
	inner  content.Provider
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger logger.Interface
}

func NewCachedProvider(inner content.Provider, client *redis.Client, ttl time.Duration, log logger.Interface) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func (p *CachedProvider) Name() string {
	return p.inner.Name() + "-cached"
}

// Fetch returns the cached menu when present, otherwise fetches from the
// wrapped provider and caches the result. Staleness up to the TTL is
// acceptable; only successful live fetches are ever cached.
func (p *CachedProvider) Fetch(ctx context.Context, locale string) (*menu.Menu, error) {
	key := menuCachePrefix + locale

	if p.client != nil {
		data, err := p.client.Get(ctx, key).Bytes()
		if err == nil {
			var m menu.Menu
			if err := json.Unmarshal(data, &m); err == nil {
				return &m, nil
			}
			p.logger.Warnw("discarding unreadable cached menu", "locale", locale, "error", err)
		} else if err != redis.Nil {
			p.logger.Debugw("menu cache read failed", "locale", locale, "error", err)
		}
	}

	result, err, _ := p.group.Do(locale, func() (interface{}, error) {
		m, err := p.inner.Fetch(ctx, locale)
		if err != nil {
			return nil, err
		}
		p.store(ctx, key, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*menu.Menu), nil
}

func (p *CachedProvider) store(ctx context.Context, key string, m *menu.Menu) {
	if p.client == nil {
		return
	}
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := p.client.Set(ctx, key, data, p.ttl).Err(); err != nil {
		p.logger.Debugw("menu cache write failed", "key", key, "error", err)
	}
}
