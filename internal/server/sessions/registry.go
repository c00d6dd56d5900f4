// Package sessions keeps one inventory engine per signed-in user and
// serializes the calls made into it.
package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/inventory"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/patrickmn/go-cache"
)

// Session owns the engine of one user. mu is held for the whole of every
// operation so an engine never sees two calls at once.
type Session struct {
	mu     sync.Mutex
	engine *inventory.Engine
	loaded bool
}

func (s *Session) load(ctx context.Context, userID string) error {
	s.loaded = false
	if err := s.engine.OnAuthChange(ctx, userID); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

// Registry maps user ids to sessions. Sessions idle for longer than the
// TTL are evicted and their engine is cleared.
type Registry struct {
	cache  *cache.Cache
	store  inventory.Store
	logger logging.Logger
}

func NewRegistry(store inventory.Store, idleTTL time.Duration, logger logging.Logger) *Registry {
	cleanup := idleTTL / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}

	r := &Registry{
		cache:  cache.New(idleTTL, cleanup),
		store:  store,
		logger: logger.With("module", "sessions"),
	}
	r.cache.OnEvicted(r.evicted)
	return r
}

// SignedIn (re)loads the user's items into their session.
func (r *Registry) SignedIn(ctx context.Context, userID string) error {
	s := r.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, userID)
}

// SignedOut drops the user's session. The engine is cleared on eviction.
func (r *Registry) SignedOut(userID string) {
	r.cache.Delete(userID)
}

// Do runs fn against the user's engine while holding the session lock,
// loading the items first when the engine is empty.
func (r *Registry) Do(ctx context.Context, userID string, fn func(e *inventory.Engine) error) error {
	s := r.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.load(ctx, userID); err != nil {
			return err
		}
	}
	return fn(s.engine)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

// session returns the user's session, creating it when absent, and
// restarts its idle timer.
func (r *Registry) session(userID string) *Session {
	for {
		if v, ok := r.cache.Get(userID); ok {
			s := v.(*Session)
			r.cache.Set(userID, s, cache.DefaultExpiration)
			return s
		}
		s := &Session{engine: inventory.NewEngine(r.store, r.logger)}
		if err := r.cache.Add(userID, s, cache.DefaultExpiration); err == nil {
			return s
		}
	}
}

func (r *Registry) evicted(userID string, v any) {
	s := v.(*Session)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Clear()
	s.loaded = false
	r.logger.Debug(context.Background(), "session closed", "user_id", userID)
}
