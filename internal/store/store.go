// Package store implements the storefront's catalog/cart state model: a
// local mirror of the remote product feed, a purely local shopping cart, and
// the admin write-through operations with their merge-by-language rule.
package store

import (
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/remote"
	"github.com/faushop/storefront/internal/translate"
)

// Page is one of the storefront's top-level pages.
type Page string

const (
	PageIntro    Page = "intro"
	PageShop     Page = "shop"
	PageCheckout Page = "checkout"
	PageAdmin    Page = "admin"
)

// ErrUnknownPage is returned for page values outside the enumeration.
var ErrUnknownPage = errors.New("unknown page")

// ErrNegativePrice is returned when an admin draft carries a negative price.
var ErrNegativePrice = errors.New("price must not be negative")

// CartLine is one (product, quantity) pair of the local cart. Product holds
// the live catalog record when the product still exists, or the copy taken
// at add time when it has since been removed remotely.
type CartLine struct {
	Product  catalog.Product
	Quantity int
}

// Confirmation is the local-only result of a successful order placement.
// No remote order record exists; the id and timestamp are generated here.
type Confirmation struct {
	ID       string
	PlacedAt time.Time
	Total    decimal.Decimal
	Lines    int
}

// ProductDraft carries an admin edit in the editor's current UI language
// only. Localized fields are plain strings; the store merges them into the
// per-language maps of the target product without touching other languages.
type ProductDraft struct {
	ID                  string // empty for a new product
	Name                string
	ShortDescription    string
	DetailedDescription string
	Price               decimal.Decimal
	Image               string
	Category            string
	AutoTranslate       bool
}

// cartLine is the stored form of a cart line. snapshot is the product as it
// was when the line was added; reads prefer the live catalog record.
type cartLine struct {
	productID string
	quantity  int
	snapshot  catalog.Product
}

// pendingWrite tracks an acknowledged admin write that the real-time feed
// has not yet echoed back. The write ack and the snapshot update are
// independent signals and may arrive in either order relative to other
// concurrent edits.
type pendingWrite struct {
	lang    catalog.Language
	name    string
	deleted bool
	since   time.Time
}

// Store is one client session's state: the shared catalog mirror, the
// session-local cart, the active filters, and transient notices. All
// mutation entry points are synchronous; admin writes go to the remote
// writer and mutate no local state on failure.
type Store struct {
	catalog    *Catalog
	writer     remote.Writer
	translator translate.Translator
	lg         *zap.Logger

	noticeTTL time.Duration
	now       func() time.Time

	mu       sync.Mutex
	cart     []cartLine
	lang     catalog.Language
	filter   string
	page     Page
	cartOpen bool
	notices  []Notice
	pending  map[string]pendingWrite
}

// Option configures a Store.
type Option func(*Store)

// WithNoticeTTL overrides the banner auto-dismiss delay.
func WithNoticeTTL(d time.Duration) Option {
	return func(s *Store) { s.noticeTTL = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a session store over the shared catalog mirror. writer and
// translator may be nil for sessions that never reach admin operations.
func New(c *Catalog, writer remote.Writer, translator translate.Translator, lg *zap.Logger, opts ...Option) *Store {
	if lg == nil {
		lg = zap.NewNop()
	}
	s := &Store{
		catalog:    c,
		writer:     writer,
		translator: translator,
		lg:         lg,
		noticeTTL:  DefaultNoticeTTL,
		now:        time.Now,
		lang:       catalog.LangJA,
		filter:     catalog.FilterAll,
		page:       PageIntro,
		pending:    make(map[string]pendingWrite),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog exposes the shared catalog mirror.
func (s *Store) Catalog() *Catalog { return s.catalog }

// --- Filters and language ---

// SetCategoryFilter sets the active category filter. The value must be
// catalog.FilterAll or a known category spelling; anything else is rejected
// with *catalog.InvalidFilterError and the filter is left unchanged.
func (s *Store) SetCategoryFilter(raw string) error {
	filter, err := catalog.ParseFilter(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	return nil
}

// CategoryFilter returns the active filter value.
func (s *Store) CategoryFilter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// FilteredProducts returns the catalog restricted to the active filter, in
// snapshot order. It is a pure derivation recomputed on every call.
func (s *Store) FilteredProducts() []catalog.Product {
	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()
	return s.catalog.FilteredBy(filter)
}

// LocalizedProducts is FilteredProducts with text resolved for the session
// language.
func (s *Store) LocalizedProducts() []catalog.LocalizedProduct {
	s.mu.Lock()
	filter, lang := s.filter, s.lang
	s.mu.Unlock()

	products := s.catalog.FilteredBy(filter)
	out := make([]catalog.LocalizedProduct, len(products))
	for i, p := range products {
		out[i] = p.Localize(lang)
	}
	return out
}

// SetLanguage sets the display language. Codes outside the supported set
// fail with *catalog.UnsupportedLanguageError and leave the language
// unchanged.
func (s *Store) SetLanguage(code string) error {
	lang, err := catalog.ParseLanguage(code)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.lang = lang
	s.mu.Unlock()
	return nil
}

// Language returns the session's display language.
func (s *Store) Language() catalog.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// CycleLanguage advances to the next language in the fixed cycling order and
// returns the new value.
func (s *Store) CycleLanguage() catalog.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = s.lang.Next()
	return s.lang
}

// --- Pages and modals ---

// SetPage navigates to one of the enumerated pages.
func (s *Store) SetPage(p Page) error {
	switch p {
	case PageIntro, PageShop, PageCheckout, PageAdmin:
	default:
		return errors.Wrapf(ErrUnknownPage, "%q", p)
	}
	s.mu.Lock()
	s.page = p
	s.mu.Unlock()
	return nil
}

// Page returns the current page.
func (s *Store) Page() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// SetCartOpen toggles the cart modal flag.
func (s *Store) SetCartOpen(open bool) {
	s.mu.Lock()
	s.cartOpen = open
	s.mu.Unlock()
}

// CartOpen reports the cart modal flag.
func (s *Store) CartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartOpen
}

// --- Cart ---

// AddToCart adds one unit of the product to the cart, incrementing the
// existing line when present so the cart never holds two lines for the same
// id. The product is looked up in the catalog snapshot current at call time;
// a product removed by a concurrent remote update fails with
// *catalog.ProductNotFoundError rather than adding a stale record.
func (s *Store) AddToCart(productID string) error {
	p, ok := s.catalog.Get(productID)
	if !ok {
		return &catalog.ProductNotFoundError{ProductID: productID}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].productID == productID {
			s.cart[i].quantity++
			s.cart[i].snapshot = p
			return nil
		}
	}
	s.cart = append(s.cart, cartLine{productID: productID, quantity: 1, snapshot: p})
	return nil
}

// RemoveFromCart removes the whole line for productID. Removing an absent
// product is a no-op, not an error.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].productID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

// CartLines returns the cart in first-add order. Lines resolve to the live
// catalog record when the product still exists and to the add-time copy
// otherwise, so a remote deletion cannot blank out a cart row mid-session.
func (s *Store) CartLines() []CartLine {
	s.mu.Lock()
	lines := make([]cartLine, len(s.cart))
	copy(lines, s.cart)
	s.mu.Unlock()

	out := make([]CartLine, len(lines))
	for i, l := range lines {
		p := l.snapshot
		if live, ok := s.catalog.Get(l.productID); ok {
			p = live
		}
		out[i] = CartLine{Product: p, Quantity: l.quantity}
	}
	return out
}

// CartTotal returns the sum of quantity times price over all lines. It is
// always recomputed, never stored, and is zero for the empty cart.
func (s *Store) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// totalLocked sums the cart against live catalog records, falling back to
// the add-time snapshots. Caller must hold s.mu.
func (s *Store) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.cart {
		p := l.snapshot
		if live, ok := s.catalog.Get(l.productID); ok {
			p = live
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(l.quantity))))
	}
	return total
}

// DistinctLines returns the number of cart lines. This is the header badge
// count: distinct products, not unit sum.
func (s *Store) DistinctLines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cart)
}

// TotalQuantity returns the unit sum over all lines.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.cart {
		n += l.quantity
	}
	return n
}

// PlaceOrder atomically clears the cart and returns a confirmation. This is
// a local-only success: no remote order record is created and no payment
// happens. Calling it on an empty cart is a no-op that posts the empty-cart
// notice and returns ok=false.
func (s *Store) PlaceOrder() (Confirmation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		s.postNoticeLocked(NoticeEmptyCart, "")
		return Confirmation{}, false
	}

	// Total and clear happen under one critical section so a concurrent
	// add can never land between them.
	conf := Confirmation{
		ID:       uuid.New().String(),
		PlacedAt: s.now(),
		Total:    s.totalLocked(),
		Lines:    len(s.cart),
	}
	s.cart = nil
	// The storefront returns to the shop once the confirmation banner
	// clears; the page state flips here, the banner lingers on its TTL.
	s.page = PageShop
	s.postNoticeLocked(NoticeOrderPlaced, "")
	return conf, true
}

// --- Notices ---

// Notices returns the currently visible banners, dropping any whose
// auto-dismiss delay has elapsed.
func (s *Store) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.notices[:0]
	for _, n := range s.notices {
		if n.ExpiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	s.notices = kept

	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}

// postNoticeLocked appends a banner. message=="" uses the built-in copy for
// the kind, resolved for the session language. Caller must hold s.mu.
func (s *Store) postNoticeLocked(kind NoticeKind, message string) {
	if message == "" {
		if byLang, ok := noticeMessages[kind]; ok {
			if m, ok := byLang[string(s.lang)]; ok {
				message = m
			} else {
				message = byLang[string(catalog.LangJA)]
			}
		}
	}
	now := s.now()
	s.notices = append(s.notices, Notice{
		Kind:      kind,
		Message:   message,
		PostedAt:  now,
		ExpiresAt: now.Add(s.noticeTTL),
	})
}

func (s *Store) postNotice(kind NoticeKind, message string) {
	s.mu.Lock()
	s.postNoticeLocked(kind, message)
	s.mu.Unlock()
}
