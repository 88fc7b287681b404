// Package querycache - кэш ответов удаленного API с окнами свежести по семействам,
// объединением одновременных запросов и инвалидацией по мутациям.
package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPrefix = "apnadera:query:"
	// сколько держать запись после окончания окна свежести (для stale-while-revalidate)
	defaultRetention = 5 * time.Minute
)

type Option func(*Cache)

func WithPrefix(prefix string) Option {
	return func(c *Cache) { c.prefix = prefix }
}

func WithRetention(d time.Duration) Option {
	return func(c *Cache) { c.retention = d }
}

// WithClock подменяет часы (в тестах).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// Cache реализует port.QueryCachePort поверх Store.
type Cache struct {
	store     Store
	prefix    string
	retention time.Duration
	now       func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	keyGen    map[string]uint64
	familyGen map[domain.QueryFamily]uint64
	inflight  map[string]*flight

	refreshes sync.WaitGroup
}

var _ port.QueryCachePort = (*Cache)(nil)

func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:     store,
		prefix:    defaultPrefix,
		retention: defaultRetention,
		now:       time.Now,
		keyGen:    make(map[string]uint64),
		familyGen: make(map[domain.QueryFamily]uint64),
		inflight:  make(map[string]*flight),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// flight - загрузки одного ключа; после Forget их может быть несколько одновременно.
type flight struct {
	family domain.QueryFamily
	n      int
}

type generation struct {
	key    uint64
	family uint64
}

func (c *Cache) storeKey(k domain.QueryKey) string {
	return c.prefix + k.String()
}

func (c *Cache) familyPrefix(f domain.QueryFamily) string {
	return c.prefix + string(f) + ":"
}

func (c *Cache) Fetch(ctx context.Context, key domain.QueryKey, fetch port.FetchFunc) ([]byte, error) {
	cacheLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "query_cache",
		"cache_key": key.String(),
	})
	sk := c.storeKey(key)

	entry, ok, err := c.store.Get(ctx, sk)
	if err != nil {
		cacheLogger.Warn("Cache read failed, loading from source", port.Fields{"error": err.Error()})
		ok = false
	}
	if ok {
		age := c.now().Sub(entry.FetchedAt)
		if age < key.Family.StaleTime() {
			cacheLogger.Debug("Cache hit", port.Fields{"age": age.String()})
			return entry.Data, nil
		}
		cacheLogger.Debug("Serving stale entry, refreshing in background", port.Fields{"age": age.String()})
		c.refreshInBackground(ctx, key, sk, fetch)
		return entry.Data, nil
	}

	// Общая загрузка не наследует отмену первого вызывающего: каждый ждет только свой ctx.
	ch := c.group.DoChan(sk, func() (any, error) {
		return c.load(context.WithoutCancel(ctx), key, sk, fetch)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			cacheLogger.Debug("Joined in-flight request", nil)
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		cacheLogger.Debug("Caller stopped waiting for in-flight request", nil)
		return nil, ctx.Err()
	}
}

// refreshInBackground не зависит от отмены ctx: запрос страницы может завершиться раньше обновления.
func (c *Cache) refreshInBackground(ctx context.Context, key domain.QueryKey, sk string, fetch port.FetchFunc) {
	bg := context.WithoutCancel(ctx)
	ch := c.group.DoChan(sk, func() (any, error) {
		return c.load(bg, key, sk, fetch)
	})

	c.refreshes.Add(1)
	go func() {
		defer c.refreshes.Done()
		res := <-ch
		if res.Err != nil {
			contextkeys.LoggerFromContext(bg).Warn("Background refresh failed", port.Fields{
				"component": "query_cache",
				"cache_key": key.String(),
				"error":     res.Err.Error(),
			})
		}
	}()
}

func (c *Cache) load(ctx context.Context, key domain.QueryKey, sk string, fetch port.FetchFunc) ([]byte, error) {
	c.mu.Lock()
	gen := generation{key: c.keyGen[sk], family: c.familyGen[key.Family]}
	f, ok := c.inflight[sk]
	if !ok {
		f = &flight{family: key.Family}
		c.inflight[sk] = f
	}
	f.n++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if f.n--; f.n == 0 {
			delete(c.inflight, sk)
		}
		c.mu.Unlock()
	}()

	v, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", key, err)
	}

	// Проверка поколения и запись идут под одной блокировкой: Invalidate либо
	// увидит запись и удалит ее, либо запись не состоится.
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != (generation{key: c.keyGen[sk], family: c.familyGen[key.Family]}) {
		contextkeys.LoggerFromContext(ctx).Debug("Discarding result superseded by invalidation", port.Fields{
			"component": "query_cache",
			"cache_key": key.String(),
		})
		return data, nil
	}
	entry := Entry{Data: data, FetchedAt: c.now()}
	if err := c.store.Set(ctx, sk, entry, key.Family.StaleTime()+c.retention); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Cache write failed", port.Fields{
			"component": "query_cache",
			"cache_key": key.String(),
			"error":     err.Error(),
		})
	}
	return data, nil
}

func (c *Cache) Invalidate(ctx context.Context, m domain.Mutation, entityID domain.ID) error {
	targets := m.Invalidates()
	if len(targets) == 0 {
		return nil
	}

	var keys, prefixes []string
	c.mu.Lock()
	for _, t := range targets {
		if t.Entity && !entityID.IsZero() {
			sk := c.storeKey(domain.QueryKey{Family: t.Family, Params: entityID.String()})
			c.keyGen[sk]++
			c.group.Forget(sk)
			keys = append(keys, sk)
			continue
		}
		c.familyGen[t.Family]++
		for sk, f := range c.inflight {
			if f.family == t.Family {
				c.group.Forget(sk)
			}
		}
		prefixes = append(prefixes, c.familyPrefix(t.Family))
	}
	c.mu.Unlock()

	var errs []error
	if err := c.store.Delete(ctx, keys...); err != nil {
		errs = append(errs, err)
	}
	for _, p := range prefixes {
		if err := c.store.DeletePrefix(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}

	contextkeys.LoggerFromContext(ctx).Debug("Queries invalidated", port.Fields{
		"component": "query_cache",
		"mutation":  string(m),
		"entity_id": entityID.String(),
	})
	return errors.Join(errs...)
}

func (c *Cache) Forget(ctx context.Context, keys ...domain.QueryKey) error {
	if len(keys) == 0 {
		return nil
	}
	sks := make([]string, 0, len(keys))
	c.mu.Lock()
	for _, k := range keys {
		sk := c.storeKey(k)
		c.keyGen[sk]++
		c.group.Forget(sk)
		sks = append(sks, sk)
	}
	c.mu.Unlock()
	return c.store.Delete(ctx, sks...)
}

// Wait дожидается фоновых обновлений (при остановке и в тестах).
func (c *Cache) Wait() {
	c.refreshes.Wait()
}
