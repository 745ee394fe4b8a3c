package store

import (
	"sync"
	"time"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/remote"
)

// Catalog is the local mirror of the remote product collection. It is
// overwritten wholesale on every snapshot; there is no incremental merge.
// Replacement is atomic with respect to readers: a read sees either the old
// snapshot or the new one, never a mix.
type Catalog struct {
	mu       sync.RWMutex
	products []catalog.Product
	byID     map[string]catalog.Product
	version  uint64
	syncedAt time.Time
}

// NewCatalog returns an empty catalog mirror.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]catalog.Product)}
}

// Replace installs a new snapshot, fully discarding the previous one. It is
// the sole ingestion point for remote state. An empty snapshot is valid and
// yields an empty catalog.
func (c *Catalog) Replace(snap remote.Snapshot) {
	products := make([]catalog.Product, len(snap.Products))
	copy(products, snap.Products)

	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	at := snap.At
	if at.IsZero() {
		at = time.Now()
	}

	c.mu.Lock()
	c.products = products
	c.byID = byID
	c.version++
	c.syncedAt = at
	c.mu.Unlock()
}

// Products returns the full catalog in snapshot order.
func (c *Catalog) Products() []catalog.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product for id from the current snapshot.
func (c *Catalog) Get(id string) (catalog.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

// FilteredBy returns the products matching the given filter in snapshot
// order. filter must be catalog.FilterAll or a canonical category code; it
// is validated upstream by SetCategoryFilter.
func (c *Catalog) FilteredBy(filter string) []catalog.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if filter == catalog.FilterAll {
		out := make([]catalog.Product, len(c.products))
		copy(out, c.products)
		return out
	}

	out := make([]catalog.Product, 0, len(c.products))
	for _, p := range c.products {
		if string(p.Category) == filter {
			out = append(out, p)
		}
	}
	return out
}

// Version returns the number of snapshots applied so far. It increases by
// exactly one per Replace, which makes staleness observable to callers.
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// SyncedAt returns the time the current snapshot was delivered. A zero time
// means no snapshot has arrived yet.
func (c *Catalog) SyncedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.syncedAt
}
