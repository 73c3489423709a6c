package weather

import (
	"sync"
	"time"

	"github.com/ddrozdov/flight-dispatch/internal/models"
)

// DefaultTTL bounds how stale a cached observation may be before the
// orchestrator must re-fetch.
const DefaultTTL = 10 * time.Minute

// Cache is a passive per-airport observation store. It never fetches on its
// own; callers check IsFresh and decide. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]models.CacheEntry
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]models.CacheEntry),
	}
}

func (c *Cache) Get(airportID string) (models.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[airportID]
	return entry, ok
}

// Put replaces any prior entry for the airport wholesale.
func (c *Cache) Put(airportID string, obs *models.WeatherObservation, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[airportID] = models.CacheEntry{
		Data:      obs,
		FetchedAt: fetchedAt,
	}
}

// IsFresh reports whether the entry is still usable at the given instant.
// An absent entry or one without a fetch timestamp is never fresh.
func IsFresh(entry models.CacheEntry, now time.Time, ttl time.Duration) bool {
	if entry.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(entry.FetchedAt) < ttl
}
