// Package cache holds the per-entity in-memory stores that sit between
// the remote gateway and the callers. Each store caches one tenant's rows
// at a time, keyed by the last tenant loaded, and applies mutations to the
// cache only after the remote write succeeded. Mutation and load failures
// are logged and swallowed: callers always see the last good cache state,
// never an error.
package cache

import (
	"context"
	"sync"

	"wholesale-dashboard/internal/util"

	"go.uber.org/zap"
)

// FetchFunc loads one tenant's full item list from the data source.
type FetchFunc[T any] func(ctx context.Context, tenantID string) ([]T, error)

// tenantCache is the shared core of every entity store: an item list, a
// loading flag and the staleness key. The staleness rule is coarse: a
// tenant counts as fresh once loaded, forever, until Invalidate re-keys
// the cache. Concurrent loads for the same tenant all run; the last
// response to arrive wins the cache write. That race is part of the
// contract — there is no request de-duplication and no cancellation
// beyond the context handed to the fetch.
type tenantCache[T any] struct {
	mu             sync.RWMutex
	items          []T
	loading        bool
	loadedTenantID string

	entity   string
	fetch    FetchFunc[T]
	tenantOf func(T) string
	logger   *zap.Logger
}

func newTenantCache[T any](entity string, fetch FetchFunc[T], tenantOf func(T) string) *tenantCache[T] {
	return &tenantCache[T]{
		entity:   entity,
		fetch:    fetch,
		tenantOf: tenantOf,
		logger:   util.GetLogger(),
	}
}

// load fetches the tenant's items unless they are already cached. A
// failed fetch keeps the previous items: stale-but-available beats
// empty-but-broken.
func (c *tenantCache[T]) load(ctx context.Context, tenantID string) {
	c.mu.Lock()
	if c.loadedTenantID == tenantID && len(c.items) > 0 {
		c.mu.Unlock()
		util.CacheHitsTotal.WithLabelValues(c.entity).Inc()
		return
	}
	c.loading = true
	c.mu.Unlock()

	items, err := c.fetch(ctx, tenantID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		util.CacheLoadsTotal.WithLabelValues(c.entity, "error").Inc()
		c.logger.Error("Failed to load entities",
			zap.String("entity", c.entity),
			zap.String("tenant_id", tenantID),
			zap.Error(err))
		return
	}

	c.items = items
	c.loadedTenantID = tenantID
	util.CacheLoadsTotal.WithLabelValues(c.entity, "success").Inc()
}

// byTenant filters the cached items synchronously; it never fetches.
func (c *tenantCache[T]) byTenant(tenantID string) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if c.tenantOf(item) == tenantID {
			result = append(result, item)
		}
	}
	return result
}

// invalidate clears the staleness key so the next load refetches. The
// cached items stay visible until then.
func (c *tenantCache[T]) invalidate() {
	c.mu.Lock()
	c.loadedTenantID = ""
	c.mu.Unlock()
	util.CacheInvalidationsTotal.WithLabelValues(c.entity).Inc()
}

func (c *tenantCache[T]) isLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// add appends a server-confirmed item to the cache.
func (c *tenantCache[T]) add(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// patch applies fn to the first item matching the predicate.
func (c *tenantCache[T]) patch(match func(T) bool, fn func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if match(c.items[i]) {
			fn(&c.items[i])
			return
		}
	}
}

// remove drops every item matching the predicate.
func (c *tenantCache[T]) remove(match func(T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, item := range c.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	c.items = kept
}
