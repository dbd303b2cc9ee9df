package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type Config struct {
	// TTL expires entries on read; zero keeps them until invalidated.
	TTL time.Duration `mapstructure:"ttl"`
}

// Invalidation is published after a key was dropped.
type Invalidation struct {
	Key string
	At  time.Time
}

type entry struct {
	value    any
	loadedAt time.Time
}

// Cache holds decoded storefront collections keyed by their API path
// ("products", "constructor/pages/<id>/blocks", ...). Entries are only
// dropped by Invalidate or by expiry.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]entry
	gen     map[string]uint64
	subs    map[int]chan Invalidation
	nextSub int
}

func New(c *Config) *Cache {
	ca := &Cache{
		now:     time.Now,
		entries: map[string]entry{},
		gen:     map[string]uint64{},
		subs:    map[int]chan Invalidation{},
	}
	if c != nil {
		ca.ttl = c.TTL
	}
	return ca
}

// Peek returns the cached value without loading.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.expired(e) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) expired(e entry) bool {
	return c.ttl > 0 && c.now().Sub(e.loadedAt) > c.ttl
}

// Get returns the cached value of key, calling load on a miss. Concurrent
// misses of one key share a single load. A value loaded while the key was
// invalidated is returned but not stored.
func (c *Cache) Get(ctx context.Context, key string, load func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := c.Peek(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		gen := c.gen[key]
		c.mu.RUnlock()

		v, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen[key] == gen {
			c.entries[key] = entry{value: v, loadedAt: c.now()}
		}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return v, nil
}

// Load is the typed form of Get.
func Load[T any](ctx context.Context, c *Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cached %s holds %T, not %T", key, v, zero)
	}
	return t, nil
}

// Invalidate drops key and notifies subscribers. Sends never block and
// happen under the lock so a concurrent unsubscribe cannot close a channel
// mid-send.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.gen[key]++
	ev := Invalidation{Key: key, At: c.now()}

	slog.Default().Debug("cache invalidated", slog.String("key", key))
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
			slog.Default().Warn("dropping invalidation for slow subscriber", slog.String("key", key))
		}
	}
}

// Subscribe returns a channel of invalidations and a function that closes it.
func (c *Cache) Subscribe(buffer int) (<-chan Invalidation, func()) {
	ch := make(chan Invalidation, buffer)
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
}

// Keys lists the cached keys, sorted.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k, e := range c.entries {
		if !c.expired(e) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
