package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/remote"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	c := NewCatalog()
	c.Replace(demoSnapshot())
	return New(c, nil, nil, nil)
}

func TestStoreDefaults(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, catalog.LangJA, s.Language())
	assert.Equal(t, catalog.FilterAll, s.CategoryFilter())
	assert.Equal(t, PageIntro, s.Page())
	assert.False(t, s.CartOpen())
	assert.Empty(t, s.CartLines())
	assert.True(t, s.CartTotal().IsZero())
}

func TestSetCategoryFilter(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetCategoryFilter(string(catalog.CategoryHypnosis)))
	assert.Equal(t, string(catalog.CategoryHypnosis), s.CategoryFilter())
	assert.Len(t, s.FilteredProducts(), 2)

	// A drifted spelling normalizes to the canonical code.
	require.NoError(t, s.SetCategoryFilter("催眠用"))
	assert.Equal(t, string(catalog.CategoryHypnosis), s.CategoryFilter())

	// An invalid value is rejected and the filter stays put.
	err := s.SetCategoryFilter("bogus")
	var invalid *catalog.InvalidFilterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, string(catalog.CategoryHypnosis), s.CategoryFilter())
	assert.Len(t, s.FilteredProducts(), 2)

	require.NoError(t, s.SetCategoryFilter(catalog.FilterAll))
	assert.Len(t, s.FilteredProducts(), 5)
}

func TestSetLanguage(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetLanguage("ko"))
	assert.Equal(t, catalog.LangKO, s.Language())

	err := s.SetLanguage("fr")
	var unsupported *catalog.UnsupportedLanguageError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, catalog.LangKO, s.Language(), "language unchanged on error")

	assert.Equal(t, catalog.LangJA, s.CycleLanguage(), "ko wraps to ja")
}

func TestLocalizedProducts(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetLanguage("en"))

	products := s.LocalizedProducts()
	require.Len(t, products, 5)
	assert.Equal(t, "product p1", products[0].Name)
	assert.Equal(t, "Hypnosis", products[0].CategoryLabel)
}

func TestSetPage(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetPage(PageShop))
	assert.Equal(t, PageShop, s.Page())

	err := s.SetPage(Page("settings"))
	require.ErrorIs(t, err, ErrUnknownPage)
	assert.Equal(t, PageShop, s.Page())
}

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddToCart("p1"))
	require.NoError(t, s.AddToCart("p2"))
	require.NoError(t, s.AddToCart("p1"))
	require.NoError(t, s.AddToCart("p1"))

	lines := s.CartLines()
	require.Len(t, lines, 2, "no duplicate lines per product")
	assert.Equal(t, "p1", lines[0].Product.ID, "first-add order kept")
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)

	assert.Equal(t, 2, s.DistinctLines())
	assert.Equal(t, 4, s.TotalQuantity())
}

func TestAddToCartUnknownProduct(t *testing.T) {
	s := newTestStore(t)

	err := s.AddToCart("nope")
	var notFound *catalog.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope", notFound.ProductID)
	assert.Empty(t, s.CartLines())
}

func TestRemoveFromCart(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddToCart("p1"))
	require.NoError(t, s.AddToCart("p2"))

	s.RemoveFromCart("p1")
	lines := s.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].Product.ID)
	assert.True(t, s.CartTotal().Equal(decimal.NewFromInt(199)))

	// Removing an absent product is a silent no-op.
	s.RemoveFromCart("p1")
	s.RemoveFromCart("ghost")
	assert.Len(t, s.CartLines(), 1)
}

func TestCartTotal(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, s.CartTotal().IsZero(), "empty cart totals zero")

	require.NoError(t, s.AddToCart("p1")) // 299
	require.NoError(t, s.AddToCart("p1")) // 299
	require.NoError(t, s.AddToCart("p3")) // 49

	want := decimal.NewFromInt(299*2 + 49)
	assert.True(t, s.CartTotal().Equal(want), "got %s", s.CartTotal())
}

func TestCartSurvivesRemoteDeletion(t *testing.T) {
	c := NewCatalog()
	c.Replace(demoSnapshot())
	s := New(c, nil, nil, nil)

	require.NoError(t, s.AddToCart("p1"))

	// The product disappears from the next snapshot; the cart line keeps
	// its add-time copy.
	c.Replace(remote.Snapshot{Products: []catalog.Product{demoProduct("p2", 199, catalog.CategoryPossession)}})

	lines := s.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].Product.ID)
	assert.True(t, s.CartTotal().Equal(decimal.NewFromInt(299)))
}

func TestCartPrefersLiveRecord(t *testing.T) {
	c := NewCatalog()
	c.Replace(demoSnapshot())
	s := New(c, nil, nil, nil)

	require.NoError(t, s.AddToCart("p1"))

	// A price change in the next snapshot is reflected by the cart.
	updated := demoProduct("p1", 350, catalog.CategoryHypnosis)
	c.Replace(remote.Snapshot{Products: []catalog.Product{updated}})

	assert.True(t, s.CartTotal().Equal(decimal.NewFromInt(350)))
}

func TestPlaceOrder(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c := NewCatalog()
	c.Replace(demoSnapshot())
	s := New(c, nil, nil, nil, WithClock(func() time.Time { return now }))

	require.NoError(t, s.AddToCart("p1"))
	require.NoError(t, s.AddToCart("p2"))

	conf, placed := s.PlaceOrder()
	require.True(t, placed)
	assert.NotEmpty(t, conf.ID)
	assert.Equal(t, now, conf.PlacedAt)
	assert.True(t, conf.Total.Equal(decimal.NewFromInt(498)))
	assert.Equal(t, 2, conf.Lines)

	assert.Empty(t, s.CartLines(), "cart cleared")
	assert.True(t, s.CartTotal().IsZero())
	assert.Equal(t, PageShop, s.Page(), "checkout returns to the shop")

	notices := s.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeOrderPlaced, notices[0].Kind)
}

// Two tabs hammering the same session: adds race order placement. Every
// confirmation must price every line it cleared.
func TestPlaceOrderConcurrentAdd(t *testing.T) {
	c := NewCatalog()
	c.Replace(demoSnapshot())
	s := New(c, nil, nil, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 50000 {
			_ = s.AddToCart("p1")
		}
	}()

	price := decimal.NewFromInt(299)
	for {
		select {
		case <-done:
			return
		default:
		}
		conf, placed := s.PlaceOrder()
		if !placed {
			continue
		}
		require.Equal(t, 1, conf.Lines)
		require.False(t, conf.Total.IsZero(), "order cleared lines it did not price")
		require.True(t, conf.Total.Mod(price).IsZero(),
			"total %s is not a multiple of the unit price", conf.Total)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	s := newTestStore(t)

	conf, placed := s.PlaceOrder()
	assert.False(t, placed)
	assert.Empty(t, conf.ID)

	notices := s.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeEmptyCart, notices[0].Kind)

	// Repeating on the still-empty cart stays a no-op.
	_, placed = s.PlaceOrder()
	assert.False(t, placed)
}

func TestNoticesExpire(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c := NewCatalog()
	c.Replace(demoSnapshot())
	s := New(c, nil, nil, nil, WithClock(func() time.Time { return now }))

	s.PlaceOrder() // empty-cart notice
	require.Len(t, s.Notices(), 1)

	now = now.Add(DefaultNoticeTTL + time.Millisecond)
	assert.Empty(t, s.Notices(), "expired notices are dropped")
}

func TestNoticeLocalization(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetLanguage("en"))

	s.PlaceOrder()
	notices := s.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "Your cart is empty.", notices[0].Message)
}

// The walkthrough from the storefront's documentation: add twice, add
// another, remove, re-read the total.
func TestCartScenario(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddToCart("p1"))
	require.NoError(t, s.AddToCart("p1"))
	require.NoError(t, s.AddToCart("p4"))
	assert.True(t, s.CartTotal().Equal(decimal.NewFromInt(299*2+79)))

	s.RemoveFromCart("p1")
	assert.True(t, s.CartTotal().Equal(decimal.NewFromInt(79)))
	assert.Equal(t, 1, s.DistinctLines())

	conf, placed := s.PlaceOrder()
	require.True(t, placed)
	assert.True(t, conf.Total.Equal(decimal.NewFromInt(79)))
	assert.Empty(t, s.CartLines())
}
