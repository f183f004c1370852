package providers

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"travelcast.app/models"
)

// ResolverCacheProxy memoizes successful resolutions in front of a
// LocationResolver. Errors are never cached; a failed resolution propagates
// unchanged and the next call recomputes.
type ResolverCacheProxy struct {
	realResolver LocationResolver
	cache        LocationCache
	geocodeTTL   time.Duration
	reverseTTL   time.Duration
}

func NewResolverCacheProxy(realResolver LocationResolver, cache LocationCache, geocodeTTL, reverseTTL time.Duration) LocationResolver {
	return &ResolverCacheProxy{
		realResolver: realResolver,
		cache:        cache,
		geocodeTTL:   geocodeTTL,
		reverseTTL:   reverseTTL,
	}
}

func (p *ResolverCacheProxy) Resolve(query models.LocationQuery) (*models.ResolvedLocation, error) {
	cacheKey, ttl, cacheable := p.cachePlan(query)
	if !cacheable {
		return p.realResolver.Resolve(query)
	}

	if cachedLocation, found := p.cache.Get(cacheKey); found {
		slog.Debug("resolver cache hit", "key", cacheKey)
		return cachedLocation, nil
	}

	slog.Debug("resolver cache miss", "key", cacheKey)

	location, err := p.realResolver.Resolve(query)
	if err != nil {
		return nil, err
	}

	p.cache.Set(cacheKey, location, ttl)

	return location, nil
}

// cachePlan derives the cache key and TTL from the full query. Plain
// current-position queries are keyed per process since the caller's IP is
// implicit; forward geocoding keeps the longer TTL.
func (p *ResolverCacheProxy) cachePlan(query models.LocationQuery) (string, time.Duration, bool) {
	switch query.Kind {
	case models.QueryFreeText:
		normalized := strings.ToLower(strings.TrimSpace(query.Text))
		return "resolve:text:" + normalized, p.geocodeTTL, true
	case models.QueryCoordinates:
		return fmt.Sprintf("resolve:coords:%.5f:%.5f", query.Latitude, query.Longitude), p.reverseTTL, true
	case models.QueryCurrentPosition:
		if query.HasClientCoords {
			return fmt.Sprintf("resolve:auto:%.5f:%.5f", query.Latitude, query.Longitude), p.reverseTTL, true
		}
		return "resolve:auto:ip", p.reverseTTL, true
	default:
		return "", 0, false
	}
}
