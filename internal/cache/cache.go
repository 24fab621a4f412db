// Package cache is a process-local cache-aside store.
//
// Entries live only in memory and are lost on restart. Callers populate and
// invalidate entries themselves around reads and writes of the authoritative
// store; nothing here ever fails, so the cache can always be bypassed.
package cache

import (
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// Cache is safe for concurrent use. Construct one per process with New and pass
// it to consumers; tests should build their own instance.
type Cache struct {
	items    *ttlcache.Cache[string, any]
	requests *prometheus.CounterVec
}

// Option configures a Cache.
type Option func(*Cache)

// WithRegisterer registers hit/miss counters on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Cache) {
		c.requests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "platformapi_cache_requests_total",
				Help: "Cache lookups by namespace and result (hit or miss).",
			},
			[]string{"namespace", "result"},
		)
		if err := reg.Register(c.requests); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				c.requests = are.ExistingCollector.(*prometheus.CounterVec)
				return
			}
			c.requests = nil
		}
	}
}

// New creates an empty cache and starts its expiry loop. Call Close to stop it.
func New(opts ...Option) *Cache {
	c := &Cache{
		items: ttlcache.New[string, any](
			ttlcache.WithDisableTouchOnHit[string, any](),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.items.Start()
	return c
}

// BuildKey joins namespace and parts with ":". Parts are not escaped, so a part
// containing ":" can collide with a longer key; callers must avoid that.
func BuildKey(namespace string, parts ...string) string {
	return strings.Join(append([]string{namespace}, parts...), ":")
}

// Get returns the live value stored under key.
func (c *Cache) Get(key string) (any, bool) {
	item := c.items.Get(key)
	if item == nil {
		c.observe(key, "miss")
		return nil, false
	}
	c.observe(key, "hit")
	return item.Value(), true
}

// Set stores value under key, replacing any previous entry. A ttl <= 0 keeps
// the entry until it is deleted or the process exits.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	c.items.Set(key, value, ttl)
}

// Delete removes key and reports whether a live entry was removed.
func (c *Cache) Delete(key string) bool {
	live := c.items.Get(key) != nil
	c.items.Delete(key)
	return live
}

// Clear drops every entry in every namespace.
func (c *Cache) Clear() {
	c.items.DeleteAll()
}

// Len reports the number of stored entries, including ones that expired but
// have not been swept yet.
func (c *Cache) Len() int {
	return c.items.Len()
}

// Close stops the expiry loop.
func (c *Cache) Close() {
	c.items.Stop()
}

func (c *Cache) observe(key, result string) {
	if c.requests == nil {
		return
	}
	ns, _, _ := strings.Cut(key, ":")
	c.requests.WithLabelValues(ns, result).Inc()
}
