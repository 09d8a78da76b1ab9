// Package persist keeps small pieces of user state in memory and mirrors
// every mutation to a kv.Store. Persistence failures are logged and
// swallowed: the in-memory state stays authoritative for the session.
package persist

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/artpar/marquee/internal/kv"
	"go.uber.org/zap"
)

// Identifiable is an item with a stable integer identity.
type Identifiable interface {
	ItemID() int64
}

// Collection is a deduplicated, insertion-ordered list of items backed by a
// single key of a kv.Store.
type Collection[T Identifiable] struct {
	mu     sync.RWMutex
	key    string
	store  kv.Store
	logger *zap.Logger
	items  []T
}

// NewCollection creates an empty collection bound to key. Call Load to read
// the persisted state.
func NewCollection[T Identifiable](store kv.Store, key string, logger *zap.Logger) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T]{
		key:    key,
		store:  store,
		logger: logger.With(zap.String("key", key)),
	}
}

// Key returns the storage key.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load replaces the in-memory items with the persisted ones. Absent or
// malformed data loads as empty.
func (c *Collection[T]) Load(ctx context.Context) {
	items := c.read(ctx)

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}

func (c *Collection[T]) read(ctx context.Context) []T {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.logger.Warn("failed to read collection", zap.Error(err))
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var stored []T
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		c.logger.Warn("discarding malformed collection", zap.Error(err))
		return nil
	}

	// Stored data may have been written by something else; keep the first
	// occurrence of each id.
	seen := make(map[int64]struct{}, len(stored))
	items := make([]T, 0, len(stored))
	for _, item := range stored {
		id := item.ItemID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, item)
	}
	return items
}

// Contains reports whether an item with id is in memory.
func (c *Collection[T]) Contains(id int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(id) >= 0
}

// Add appends item unless an item with the same id is present. It returns
// true when the collection changed.
func (c *Collection[T]) Add(ctx context.Context, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(item.ItemID()) >= 0 {
		return false
	}

	c.items = append(c.items, item)
	c.persist(ctx)
	return true
}

// Remove deletes the item with id, keeping the order of the rest. It returns
// true when an item was removed. The result is persisted either way.
func (c *Collection[T]) Remove(ctx context.Context, id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx >= 0 {
		c.items = slices.Delete(c.items, idx, idx+1)
	}
	c.persist(ctx)
	return idx >= 0
}

// Toggle removes item when present and adds it otherwise. It returns the
// new membership.
func (c *Collection[T]) Toggle(ctx context.Context, item T) bool {
	if c.Contains(item.ItemID()) {
		c.Remove(ctx, item.ItemID())
		return false
	}
	c.Add(ctx, item)
	return true
}

// Clear removes every item.
func (c *Collection[T]) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.persist(ctx)
}

// Items returns a copy of the items in insertion order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// IDs returns the item ids in insertion order.
func (c *Collection[T]) IDs() []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]int64, 0, len(c.items))
	for _, item := range c.items {
		ids = append(ids, item.ItemID())
	}
	return ids
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) indexOf(id int64) int {
	return slices.IndexFunc(c.items, func(item T) bool {
		return item.ItemID() == id
	})
}

// persist writes the full sequence. Caller holds the write lock.
func (c *Collection[T]) persist(ctx context.Context) {
	items := c.items
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn("failed to encode collection", zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		c.logger.Warn("failed to persist collection", zap.Int("items", len(items)), zap.Error(err))
	}
}
