package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"IntelPull/internal/domain/models"
	pkgcache "IntelPull/pkg/cache"
)

// cacheEntry wraps a stored response with its write time. Validity is
// decided here from storedAt against the configured TTL, so entry lifetime
// does not depend on backend eviction behavior.
type cacheEntry struct {
	Response models.IntelligenceResponse `json:"response"`
	StoredAt time.Time                   `json:"stored_at"`
}

// ResponseCache stores assembled intelligence responses in a cache backend,
// keyed by the MD5 of "TICKER:category". A single TTL applies to all entries.
// Concurrent requests for the same key are not coordinated: both may miss
// and the later Put wins, which is acceptable because the cache is only an
// optimization.
type ResponseCache struct {
	backend pkgcache.Service
	ttl     time.Duration
}

func NewResponseCache(backend pkgcache.Service, ttl time.Duration) *ResponseCache {
	return &ResponseCache{backend: backend, ttl: ttl}
}

func (c *ResponseCache) cacheKey(ticker string, category models.Category) string {
	raw := strings.ToUpper(ticker) + ":" + string(category)
	return pkgcache.GenerateKey("intel", pkgcache.HashKey(raw))
}

// Get returns the cached response while now - storedAt < TTL.
func (c *ResponseCache) Get(ctx context.Context, ticker string, category models.Category) (models.IntelligenceResponse, bool) {
	// Backend trouble degrades to a miss; the pipeline recomputes.
	raw, err := c.backend.Get(ctx, c.cacheKey(ticker, category))
	if err != nil {
		return models.IntelligenceResponse{}, false
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return models.IntelligenceResponse{}, false
	}
	if time.Since(entry.StoredAt) >= c.ttl {
		return models.IntelligenceResponse{}, false
	}
	return entry.Response, true
}

// Put overwrites any previous entry for the key.
func (c *ResponseCache) Put(ctx context.Context, ticker string, category models.Category, resp models.IntelligenceResponse) error {
	entry := cacheEntry{Response: resp, StoredAt: time.Now()}
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, c.cacheKey(ticker, category), string(b), c.ttl)
}
