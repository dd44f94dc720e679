// Package notifyconfig supplies the expiration notification lead times.
//
// A static list (from the environment) wins. Otherwise the list is fetched
// through the configured loader and cached for a TTL. Any failure yields an
// empty config so that scanning degrades to "nothing expiring" instead of
// failing.
package notifyconfig

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"contract-compliance/internal/expiration"
	"contract-compliance/internal/model"
)

const DefaultTTL = 5 * time.Minute

// Loader fetches the configured lead times from the backing store.
type Loader func(ctx context.Context) ([]int, error)

type Registry struct {
	static []int
	load   Loader
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	mu      sync.Mutex
	cached  *model.ExpirationNotificationConfig
	expires time.Time
}

type Option func(*Registry)

// WithStatic pins the lead times; the loader is never called.
func WithStatic(days []int) Option {
	return func(r *Registry) { r.static = days }
}

func WithLoader(load Loader) Option {
	return func(r *Registry) { r.load = load }
}

func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) { r.ttl = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func New(opts ...Option) *Registry {
	r := &Registry{
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the current notification config. It never fails.
func (r *Registry) Config(ctx context.Context) model.ExpirationNotificationConfig {
	if r.static != nil {
		return expiration.NewConfig(r.static...)
	}
	if r.load == nil {
		return expiration.NewConfig()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && r.now().Before(r.expires) {
		return *r.cached
	}

	days, err := r.load(ctx)
	if err != nil {
		r.logger.Warn("notification config unavailable, using empty config", zap.Error(err))
		return expiration.NewConfig()
	}

	cfg := expiration.NewConfig(days...)
	r.cached = &cfg
	r.expires = r.now().Add(r.ttl)
	return cfg
}

// Invalidate drops the cached config.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}
