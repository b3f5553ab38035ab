// Package query caches catalog reads per key and tracks each key's request state.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/me/rickdex/pkg/model"
)

// Key identifies a cached query: the operation name plus its parameters.
type Key struct {
	Op     string
	Params string
}

// NewKey builds a key from an operation name and its parameters.
func NewKey(op string, params ...any) Key {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprint(p)
	}
	return Key{Op: op, Params: strings.Join(parts, "/")}
}

func (k Key) String() string {
	return k.Op + ":" + k.Params
}

// Fetcher performs the underlying read for a key.
type Fetcher func(ctx context.Context) (any, error)

// Snapshot is a point-in-time view of one key.
// Value is kept after a failed refetch so callers can keep showing it.
type Snapshot struct {
	State     model.QueryState
	Value     any
	HasValue  bool
	Err       error
	UpdatedAt time.Time
	Stale     bool // a fetch would not be served from cache
}

// Config controls freshness and eviction.
type Config struct {
	StaleTime time.Duration // how long a successful value is served without refetching
	GCTime    time.Duration // how long an unread, idle key is kept
}

// DefaultConfig returns five minute freshness and eviction windows.
func DefaultConfig() Config {
	return Config{
		StaleTime: 5 * time.Minute,
		GCTime:    5 * time.Minute,
	}
}

// Option configures optional Cache behaviour.
type Option func(*Cache)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

type entry struct {
	state     model.QueryState
	value     any
	hasValue  bool
	err       error
	updatedAt time.Time
	lastUsed  time.Time
	issued    uint64 // generation of the most recently started fetch
	applied   uint64 // generation whose outcome is stored
	inflight  int
}

// Cache deduplicates concurrent reads of the same key and stores their results.
//
// When fetches for one key overlap, the outcome of the most recently started fetch
// wins: an older fetch that completes after a newer one has been stored is discarded.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an empty cache.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[Key]*entry),
		cfg:     cfg,
		logger:  logger.With("component", "query"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached value for key while it is fresh, otherwise it runs fn,
// joining an in-flight fetch for the same key if there is one.
func (c *Cache) Fetch(ctx context.Context, key Key, fn Fetcher) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	if e.state == model.QueryStateSuccess && c.now().Sub(e.updatedAt) < c.cfg.StaleTime {
		v := e.value
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	return c.run(ctx, key, fn, false)
}

// Refetch runs fn for key regardless of freshness. A fetch already in flight is
// not joined; its result is discarded if this one is stored first.
func (c *Cache) Refetch(ctx context.Context, key Key, fn Fetcher) (any, error) {
	c.mu.Lock()
	c.entryLocked(key)
	c.mu.Unlock()

	return c.run(ctx, key, fn, true)
}

// Peek returns the current snapshot for key without fetching. Peeking a key that
// holds a value counts as a read for eviction; peeking one without a value does not.
func (c *Cache) Peek(key Key) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Snapshot{State: model.QueryStateIdle}
	}
	now := c.now()
	if e.hasValue {
		e.lastUsed = now
	}
	return Snapshot{
		State:     e.state,
		Value:     e.value,
		HasValue:  e.hasValue,
		Err:       e.err,
		UpdatedAt: e.updatedAt,
		Stale:     e.state != model.QueryStateSuccess || now.Sub(e.updatedAt) >= c.cfg.StaleTime,
	}
}

// Len returns the number of keys currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Collect evicts keys that have not been read for GCTime and have nothing in flight.
func (c *Cache) Collect() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	for key, e := range c.entries {
		if e.inflight == 0 && now.Sub(e.lastUsed) >= c.cfg.GCTime {
			delete(c.entries, key)
			evicted++
		}
	}
	if evicted > 0 {
		c.logger.Debug("evicted idle queries", "count", evicted, "remaining", len(c.entries))
	}
	return evicted
}

// Run evicts idle keys periodically until ctx is cancelled.
func (c *Cache) Run(ctx context.Context) error {
	interval := c.cfg.GCTime / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Collect()
		}
	}
}

func (c *Cache) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{state: model.QueryStateIdle}
		c.entries[key] = e
	}
	e.lastUsed = c.now()
	return e
}

func (c *Cache) run(ctx context.Context, key Key, fn Fetcher, force bool) (any, error) {
	sfKey := key.String()
	if force {
		c.group.Forget(sfKey)
	}

	// The shared call must outlive any single caller's cancellation.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(sfKey, func() (any, error) {
		return c.execute(shared, key, fn)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) execute(ctx context.Context, key Key, fn Fetcher) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	e.issued++
	gen := e.issued
	e.inflight++
	c.markFetchingLocked(key, e)
	c.mu.Unlock()

	start := c.now()
	v, err := fn(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	e.inflight--
	if gen <= e.applied {
		c.logger.Debug("discarding superseded result", "key", key.String(), "generation", gen, "applied", e.applied)
		if e.inflight == 0 && e.state.IsFetching() {
			if e.err != nil {
				c.transitionLocked(key, e, model.QueryStateError)
			} else {
				c.transitionLocked(key, e, model.QueryStateSuccess)
			}
		}
		return v, err
	}
	e.applied = gen

	if err != nil {
		c.transitionLocked(key, e, model.QueryStateError)
		e.err = err
		c.logger.Debug("query failed", "key", key.String(), "error", err)
	} else {
		c.transitionLocked(key, e, model.QueryStateSuccess)
		e.value = v
		e.hasValue = true
		e.err = nil
		e.updatedAt = c.now()
		c.logger.Debug("query succeeded", "key", key.String(), "duration", c.now().Sub(start).String())
	}

	// A newer fetch is still running for this key.
	if e.inflight > 0 {
		c.markFetchingLocked(key, e)
	}
	return v, err
}

func (c *Cache) markFetchingLocked(key Key, e *entry) {
	switch e.state {
	case model.QueryStateSuccess:
		c.transitionLocked(key, e, model.QueryStateRefreshing)
	case model.QueryStateIdle, model.QueryStateError:
		c.transitionLocked(key, e, model.QueryStateLoading)
	}
}

func (c *Cache) transitionLocked(key Key, e *entry, next model.QueryState) {
	if e.state != next && !e.state.CanTransitionTo(next) {
		c.logger.Warn("unexpected query transition", "key", key.String(), "from", e.state, "to", next)
	}
	e.state = next
}
