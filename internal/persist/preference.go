package persist

import (
	"context"
	"slices"
	"sync"

	"github.com/artpar/marquee/internal/kv"
	"go.uber.org/zap"
)

// Preference is a single value drawn from a fixed set of codes, backed by a
// single key of a kv.Store. Every Load and accepted Set notifies the
// observer with the current value.
type Preference[T ~string] struct {
	mu       sync.RWMutex
	key      string
	store    kv.Store
	logger   *zap.Logger
	allowed  []T
	fallback T
	value    T
	observe  func(T)
}

// PreferenceOption configures a Preference.
type PreferenceOption[T ~string] func(*Preference[T])

// WithObserver registers fn to receive the value after every Load and Set.
func WithObserver[T ~string](fn func(T)) PreferenceOption[T] {
	return func(p *Preference[T]) {
		p.observe = fn
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger[T ~string](logger *zap.Logger) PreferenceOption[T] {
	return func(p *Preference[T]) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPreference creates a preference holding fallback until Load is called.
// fallback should be a member of allowed.
func NewPreference[T ~string](store kv.Store, key string, allowed []T, fallback T, opts ...PreferenceOption[T]) *Preference[T] {
	p := &Preference[T]{
		key:      key,
		store:    store,
		logger:   zap.NewNop(),
		allowed:  slices.Clone(allowed),
		fallback: fallback,
		value:    fallback,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("key", key))
	return p
}

// Valid reports whether code is one of the allowed values.
func (p *Preference[T]) Valid(code T) bool {
	return slices.Contains(p.allowed, code)
}

// Allowed returns the allowed values in declaration order.
func (p *Preference[T]) Allowed() []T {
	return slices.Clone(p.allowed)
}

// Value returns the current value.
func (p *Preference[T]) Value() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Load reads the persisted value. Absent, unreadable or unknown values load
// as the fallback.
func (p *Preference[T]) Load(ctx context.Context) T {
	value := p.fallback

	raw, ok, err := p.store.Get(ctx, p.key)
	switch {
	case err != nil:
		p.logger.Warn("failed to read preference", zap.Error(err))
	case ok && p.Valid(T(raw)):
		value = T(raw)
	case ok:
		p.logger.Warn("ignoring unknown preference value", zap.String("value", raw))
	}

	p.mu.Lock()
	p.value = value
	p.mu.Unlock()

	p.notify(value)
	return value
}

// Set stores code. Codes outside the allowed set are ignored and Set
// returns false.
func (p *Preference[T]) Set(ctx context.Context, code T) bool {
	if !p.Valid(code) {
		p.logger.Warn("rejecting unknown preference value", zap.String("value", string(code)))
		return false
	}

	p.mu.Lock()
	p.value = code
	p.mu.Unlock()

	if err := p.store.Set(ctx, p.key, string(code)); err != nil {
		p.logger.Warn("failed to persist preference", zap.Error(err))
	}

	p.notify(code)
	return true
}

func (p *Preference[T]) notify(value T) {
	if p.observe != nil {
		p.observe(value)
	}
}
