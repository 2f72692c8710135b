package table

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_table_cache_hits_total",
		Help: "Total number of table lookups served from the cache.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_table_cache_misses_total",
		Help: "Total number of table lookups that had to read the source.",
	})
	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_table_load_duration_seconds",
		Help:    "Time spent reading and coercing a source.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 14),
	})
	loadedRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_table_rows",
		Help: "Number of rows in the most recently loaded table.",
	})
)

// Cache memoizes loaded tables per absolute source path. Entries expire after
// the TTL, after which the next lookup reads the source again.
type Cache struct {
	loader  *Loader
	entries *expirable.LRU[string, *Table]

	// mu serializes loads so concurrent misses read the source once
	mu sync.Mutex
}

// NewCache creates a cache holding at most size tables for ttl each.
func NewCache(loader *Loader, size int, ttl time.Duration) *Cache {
	return &Cache{
		loader:  loader,
		entries: expirable.NewLRU[string, *Table](size, nil, ttl),
	}
}

// Get returns the table for path, loading it on a miss.
func (c *Cache) Get(path string) (*Table, error) {
	key := cacheKey(path)

	if t, ok := c.entries.Get(key); ok {
		cacheHitsTotal.Inc()
		return t, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have loaded it while we waited
	if t, ok := c.entries.Peek(key); ok {
		cacheHitsTotal.Inc()
		return t, nil
	}
	cacheMissesTotal.Inc()

	start := time.Now()
	t, err := c.loader.Load(key)
	if err != nil {
		return nil, err
	}
	loadDuration.Observe(time.Since(start).Seconds())
	loadedRows.Set(float64(t.Len()))

	c.entries.Add(key, t)
	return t, nil
}

// Reload evicts path and reads it again.
func (c *Cache) Reload(path string) (*Table, error) {
	c.Evict(path)
	return c.Get(path)
}

// Evict drops the cached table for path, if any.
func (c *Cache) Evict(path string) {
	key := cacheKey(path)
	if c.entries.Remove(key) {
		log.Debug().Str("source", key).Msg("Table evicted from cache")
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
