package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"travelcast.app/models"
)

// GenericCacheInterface defines generic cache operations
type GenericCacheInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// LocationCacheInterface defines caching operations for resolved locations
type LocationCacheInterface interface {
	Get(key string) (*models.ResolvedLocation, bool)
	Set(key string, value *models.ResolvedLocation, ttl time.Duration)
	Delete(key string)
	Clear()
}

// ForecastCacheInterface defines caching operations for forecast results
type ForecastCacheInterface interface {
	Get(key string) (*models.ForecastResult, bool)
	Set(key string, value *models.ForecastResult, ttl time.Duration)
	Delete(key string)
	Clear()
}

type cacheEntry struct {
	Data      []byte
	ExpiresAt time.Time
}

type MemoryCache struct {
	data   map[string]cacheEntry
	mutex  sync.RWMutex
	ticker *time.Ticker
	stopCh chan struct{}
}

func NewMemoryCache() GenericCacheInterface {
	cache := &MemoryCache{
		data:   make(map[string]cacheEntry),
		ticker: time.NewTicker(5 * time.Minute),
		stopCh: make(chan struct{}),
	}

	go cache.cleanup()
	return cache
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (c *MemoryCache) Delete(ctx context.Context, key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

func (c *MemoryCache) Clear(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]cacheEntry)
}

func (c *MemoryCache) cleanup() {
	for {
		select {
		case <-c.ticker.C:
			c.removeExpiredEntries()
		case <-c.stopCh:
			c.ticker.Stop()
			return
		}
	}
}

func (c *MemoryCache) removeExpiredEntries() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.ExpiresAt) {
			delete(c.data, key)
		}
	}
}

// LocationCache wraps a generic cache with resolved-location operations
type LocationCache struct {
	cache GenericCacheInterface
}

func NewLocationCache(cache GenericCacheInterface) LocationCacheInterface {
	return &LocationCache{
		cache: cache,
	}
}

func (l *LocationCache) Get(key string) (*models.ResolvedLocation, bool) {
	data, found := l.cache.Get(context.Background(), key)
	if !found {
		return nil, false
	}

	var location models.ResolvedLocation
	if err := json.Unmarshal(data, &location); err != nil {
		return nil, false
	}

	return &location, true
}

func (l *LocationCache) Set(key string, value *models.ResolvedLocation, ttl time.Duration) {
	if value == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	l.cache.Set(context.Background(), key, data, ttl)
}

func (l *LocationCache) Delete(key string) {
	l.cache.Delete(context.Background(), key)
}

func (l *LocationCache) Clear() {
	l.cache.Clear(context.Background())
}

// ForecastCache wraps a generic cache with forecast-result operations
type ForecastCache struct {
	cache GenericCacheInterface
}

func NewForecastCache(cache GenericCacheInterface) ForecastCacheInterface {
	return &ForecastCache{
		cache: cache,
	}
}

func (f *ForecastCache) Get(key string) (*models.ForecastResult, bool) {
	data, found := f.cache.Get(context.Background(), key)
	if !found {
		return nil, false
	}

	var forecast models.ForecastResult
	if err := json.Unmarshal(data, &forecast); err != nil {
		return nil, false
	}

	return &forecast, true
}

func (f *ForecastCache) Set(key string, value *models.ForecastResult, ttl time.Duration) {
	if value == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	f.cache.Set(context.Background(), key, data, ttl)
}

func (f *ForecastCache) Delete(key string) {
	f.cache.Delete(context.Background(), key)
}

func (f *ForecastCache) Clear() {
	f.cache.Clear(context.Background())
}
