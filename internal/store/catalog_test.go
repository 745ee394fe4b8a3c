package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/remote"
)

func demoProduct(id string, price int64, cat catalog.Category) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     catalog.LocalizedText{catalog.LangJA: "商品" + id, catalog.LangEN: "product " + id},
		Price:    decimal.NewFromInt(price),
		Category: cat,
	}
}

func demoSnapshot() remote.Snapshot {
	return remote.Snapshot{
		Products: []catalog.Product{
			demoProduct("p1", 299, catalog.CategoryHypnosis),
			demoProduct("p2", 199, catalog.CategoryPossession),
			demoProduct("p3", 49, catalog.CategoryAgentGear),
			demoProduct("p4", 79, catalog.CategoryTSF),
			demoProduct("p5", 499, catalog.CategoryHypnosis),
		},
		At: time.Now(),
	}
}

func TestCatalogReplace(t *testing.T) {
	c := NewCatalog()
	assert.Empty(t, c.Products())
	assert.EqualValues(t, 0, c.Version())
	assert.True(t, c.SyncedAt().IsZero())

	c.Replace(demoSnapshot())
	require.Len(t, c.Products(), 5)
	assert.EqualValues(t, 1, c.Version())
	assert.False(t, c.SyncedAt().IsZero())

	p, ok := c.Get("p2")
	require.True(t, ok)
	assert.Equal(t, catalog.CategoryPossession, p.Category)

	// The next snapshot discards products absent from it.
	c.Replace(remote.Snapshot{Products: []catalog.Product{demoProduct("p9", 10, catalog.CategoryTSF)}})
	assert.EqualValues(t, 2, c.Version())
	_, ok = c.Get("p2")
	assert.False(t, ok)
	require.Len(t, c.Products(), 1)

	// An empty snapshot empties the catalog rather than being ignored.
	c.Replace(remote.Snapshot{})
	assert.Empty(t, c.Products())
	assert.EqualValues(t, 3, c.Version())
}

func TestCatalogSnapshotOrderPreserved(t *testing.T) {
	c := NewCatalog()
	c.Replace(demoSnapshot())

	ids := make([]string, 0, 5)
	for _, p := range c.Products() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids)
}

func TestCatalogFilteredBy(t *testing.T) {
	c := NewCatalog()
	c.Replace(demoSnapshot())

	all := c.FilteredBy(catalog.FilterAll)
	assert.Len(t, all, 5)

	hyp := c.FilteredBy(string(catalog.CategoryHypnosis))
	require.Len(t, hyp, 2)
	assert.Equal(t, "p1", hyp[0].ID)
	assert.Equal(t, "p5", hyp[1].ID)

	// Per-category results partition the catalog.
	total := 0
	for _, cat := range catalog.Categories {
		total += len(c.FilteredBy(string(cat)))
	}
	assert.Equal(t, len(all), total)
}

func TestCatalogReplaceIsAtomic(t *testing.T) {
	c := NewCatalog()

	// Readers must never observe a snapshot mixing two generations. Each
	// generation uses a single distinct price for every product.
	makeSnap := func(gen int64) remote.Snapshot {
		products := make([]catalog.Product, 5)
		for i := range products {
			products[i] = demoProduct(fmt.Sprintf("p%d", i), gen, catalog.CategoryTSF)
		}
		return remote.Snapshot{Products: products}
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for gen := int64(1); gen <= 500; gen++ {
			c.Replace(makeSnap(gen))
		}
		close(stop)
	}()

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				products := c.Products()
				if len(products) == 0 {
					continue
				}
				first := products[0].Price
				for _, p := range products {
					if !p.Price.Equal(first) {
						t.Error("observed a torn snapshot")
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
