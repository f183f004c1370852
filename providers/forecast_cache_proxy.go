package providers

import (
	"fmt"
	"log/slog"
	"time"

	"travelcast.app/models"
)

// ForecastCacheProxy memoizes successful forecast fetches keyed by the full
// argument tuple. Failed fetches are not cached.
type ForecastCacheProxy struct {
	realProvider ForecastProvider
	cache        ForecastCache
	cacheTTL     time.Duration
}

func NewForecastCacheProxy(realProvider ForecastProvider, cache ForecastCache, cacheTTL time.Duration) ForecastProvider {
	return &ForecastCacheProxy{
		realProvider: realProvider,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

func (p *ForecastCacheProxy) FetchForecast(lat, lon float64, days int) (*models.ForecastResult, error) {
	cacheKey := p.generateCacheKey(lat, lon, days)

	if cachedForecast, found := p.cache.Get(cacheKey); found {
		slog.Debug("forecast cache hit", "key", cacheKey)
		return cachedForecast, nil
	}

	slog.Debug("forecast cache miss", "key", cacheKey)

	forecast, err := p.realProvider.FetchForecast(lat, lon, days)
	if err != nil {
		return nil, err
	}

	p.cache.Set(cacheKey, forecast, p.cacheTTL)

	return forecast, nil
}

func (p *ForecastCacheProxy) generateCacheKey(lat, lon float64, days int) string {
	return fmt.Sprintf("forecast:%.5f:%.5f:%d", lat, lon, days)
}
