// Package session gives every browser its own cart and checkout.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dhavalpatel0212-spec/Mithai/internal/cart"
	"github.com/dhavalpatel0212-spec/Mithai/internal/checkout"
	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL             = 2 * time.Hour
	DefaultCleanupInterval = time.Minute
)

type Session struct {
	ID       string
	Cart     *cart.Cart
	Checkout *checkout.Checkout
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*entry
	cache     SnapshotCache
	confirmer checkout.Confirmer
	log       *zap.Logger
	sfg       singleflight.Group
	ttl       time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

type Config struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

func NewRegistry(cfg Config, cache SnapshotCache, confirmer checkout.Confirmer, log *zap.Logger) *Registry {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}
	if cache == nil {
		cache = NoopCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		sessions:    make(map[string]*entry),
		cache:       cache,
		confirmer:   confirmer,
		log:         log,
		ttl:         cfg.TTL,
		stopCleanup: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.cleanupLoop(cfg.CleanupInterval)

	return r
}

// Get returns the session for id, creating it (or restoring its cart from the
// cache) on first use.
func (r *Registry) Get(ctx context.Context, id string) *Session {
	if s := r.touch(id); s != nil {
		return s
	}

	// collapse concurrent first requests of one session into one cache lookup
	v, _, _ := r.sfg.Do(id, func() (interface{}, error) {
		if s := r.touch(id); s != nil {
			return s, nil
		}

		c := cart.New()
		snap, err := r.cache.Get(ctx, id)
		switch {
		case err == nil:
			c.Restore(snap.Lines)
			r.log.Debug("cart restored from cache", zap.String("session_id", id), zap.Int("lines", len(snap.Lines)))
		case !errors.Is(err, ErrCacheMiss):
			r.log.Warn("cache get error", zap.String("session_id", id), zap.Error(err))
		}

		s := &Session{
			ID:       id,
			Cart:     c,
			Checkout: checkout.New(c, r.confirmer, r.log.With(zap.String("session_id", id))),
		}
		r.mu.Lock()
		r.sessions[id] = &entry{session: s, lastSeen: time.Now()}
		r.mu.Unlock()
		return s, nil
	})

	return v.(*Session)
}

// Save writes the session's cart to the cache. Cache errors are logged only.
func (r *Registry) Save(ctx context.Context, s *Session) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()

	snap := &Snapshot{SessionID: s.ID, Lines: s.Cart.Lines(), UpdatedAt: time.Now()}
	if err := r.cache.Set(ctx, s.ID, snap); err != nil {
		r.log.Warn("cache set error", zap.String("session_id", s.ID), zap.Error(err))
	}
}

// Delete forgets a session in memory and in the cache.
func (r *Registry) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()

	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("cache delete error", zap.String("session_id", id), zap.Error(err))
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close stops the background cleanup and waits for it to finish
func (r *Registry) Close() error {
	close(r.stopCleanup)
	r.wg.Wait()
	return nil
}

func (r *Registry) touch(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil
	}
	e.lastSeen = time.Now()
	return e.session
}

func (r *Registry) cleanupLoop(interval time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.expire(time.Now())
		case <-r.stopCleanup:
			return
		}
	}
}

// expire drops idle sessions from memory. A session mid-checkout is kept.
func (r *Registry) expire(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) < r.ttl {
			continue
		}
		if e.session.Checkout.Status().State == domain.CheckoutStatusSubmitting {
			continue
		}
		delete(r.sessions, id)
		n++
	}
	if n > 0 {
		r.log.Debug("expired idle sessions", zap.Int("count", n))
	}
	return n
}
