// Package cache provides the key-based invalidation coordinator for
// derived bakery data. The cache is an explicit component handed to every
// service that holds invalidation rights; nothing in the system reaches a
// package-level cache. Invalidation is idempotent and monotonic: an extra
// invalidation is always safe, so strict ordering between concurrent
// invalidations is not required.
package cache

import (
	"sync"
	"time"
)

// Domain cache keys. Mutation flows invalidate the keys their entity
// participates in; the dependency table below decides which.
const (
	KeyIngredients = "ingredients"
	KeyRecipes     = "recipes"
	KeyProducts    = "products"
	KeyPurchases   = "purchases"
	KeyReports     = "reports"
)

// Mutation identifies a kind of domain change for dependency lookup.
type Mutation string

const (
	MutationIngredientEdited     Mutation = "ingredient_edited"
	MutationIngredientCostChange Mutation = "ingredient_cost_change"
	MutationRecipeEdited         Mutation = "recipe_edited"
	MutationProductEdited        Mutation = "product_edited"
	MutationPurchaseRegistered   Mutation = "purchase_registered"
)

// dependencies is the static table mapping each mutation to the cache
// keys whose derivation touches the mutated entity. An ingredient edit
// that does not change its cost only drops the ingredients key; a cost
// change cascades to everything priced from it.
var dependencies = map[Mutation][]string{
	MutationIngredientEdited:     {KeyIngredients},
	MutationIngredientCostChange: {KeyIngredients, KeyRecipes, KeyProducts, KeyReports},
	MutationRecipeEdited:         {KeyRecipes, KeyProducts, KeyReports},
	MutationProductEdited:        {KeyProducts, KeyReports},
	MutationPurchaseRegistered:   {KeyPurchases, KeyReports},
}

// KeysFor returns the cache keys invalidated by a mutation. The returned
// slice is shared; callers must not modify it.
func KeysFor(m Mutation) []string {
	return dependencies[m]
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a process-wide TTL cache read by many concurrent requests and
// written by any mutation. A mutex guards the map, and compute functions
// run while it is held: the computations are short reads and the
// single-writer database serializes them anyway.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time // injectable for tests
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Invalidate removes the cached entry for a key if present. Idempotent.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateFor drops every key the dependency table associates with the
// mutation and returns the keys dropped.
func (c *Cache) InvalidateFor(m Mutation) []string {
	keys := KeysFor(m)
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return keys
}

// GetOrCompute returns the cached value for key when fresh; otherwise it
// calls compute, stores the result with the given TTL, and returns it.
// A compute error is returned without caching anything.
func (c *Cache) GetOrCompute(key string, ttl time.Duration, compute func() (any, error)) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && c.now().Before(e.expiresAt) {
		return e.value, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}

	c.entries[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	return value, nil
}

// Peek returns the cached value without computing, and whether it was
// present and fresh.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Len returns the number of entries, fresh or stale.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
