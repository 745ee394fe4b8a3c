package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/domain/content"
	"github.com/faushop/storefront/internal/store"
)

// getSession returns the session-scoped view state in one round trip: the
// page, language, active filter, and the cart badge counters.
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("page")
		e.Str(string(st.Page()))
		e.FieldStart("language")
		e.Str(string(st.Language()))
		e.FieldStart("filter")
		e.Str(st.CategoryFilter())
		e.FieldStart("cartOpen")
		e.Bool(st.CartOpen())
		e.FieldStart("cartLines")
		e.Int(st.DistinctLines())
		e.FieldStart("cartQuantity")
		e.Int(st.TotalQuantity())
		e.FieldStart("catalogVersion")
		e.UInt64(st.Catalog().Version())
		e.ObjEnd()
	})
}

// listProducts returns the catalog restricted to the active filter,
// localized for the session language, in snapshot order.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	products := st.LocalizedProducts()

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("products")
		e.ArrStart()
		for _, p := range products {
			encodeProduct(e, p)
		}
		e.ArrEnd()
		e.FieldStart("filter")
		e.Str(st.CategoryFilter())
		e.ObjEnd()
	})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	id := r.PathValue("id")

	p, ok := st.Catalog().Get(id)
	if !ok {
		respondError(w, r, &catalog.ProductNotFoundError{ProductID: id})
		return
	}

	localized := p.Localize(st.Language())
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeProduct(e, localized)
	})
}

// listCategories returns the filter bar entries: "all" plus every canonical
// category with its label in the session language.
func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	lang := st.Language()

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("categories")
		e.ArrStart()
		for _, c := range catalog.Categories {
			e.ObjStart()
			e.FieldStart("code")
			e.Str(string(c))
			e.FieldStart("label")
			e.Str(c.Label(lang))
			e.ObjEnd()
		}
		e.ArrEnd()
		e.ObjEnd()
	})
}

func (h *Handler) setFilter(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)

	var filter string
	if err := decodeObject(r, func(d *jx.Decoder, key string) error {
		if key != "filter" {
			return d.Skip()
		}
		v, err := d.Str()
		filter = v
		return err
	}); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	if err := st.SetCategoryFilter(filter); err != nil {
		respondError(w, r, err)
		return
	}
	h.listProducts(w, r)
}

func (h *Handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)

	var code string
	if err := decodeObject(r, func(d *jx.Decoder, key string) error {
		if key != "language" {
			return d.Skip()
		}
		v, err := d.Str()
		code = v
		return err
	}); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	if err := st.SetLanguage(code); err != nil {
		respondError(w, r, err)
		return
	}
	writeLanguage(w, st.Language())
}

func (h *Handler) cycleLanguage(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	writeLanguage(w, st.CycleLanguage())
}

func writeLanguage(w http.ResponseWriter, lang catalog.Language) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("language")
		e.Str(string(lang))
		e.ObjEnd()
	})
}

func (h *Handler) setPage(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)

	var page string
	if err := decodeObject(r, func(d *jx.Decoder, key string) error {
		if key != "page" {
			return d.Skip()
		}
		v, err := d.Str()
		page = v
		return err
	}); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	if err := st.SetPage(store.Page(page)); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("page")
		e.Str(page)
		e.ObjEnd()
	})
}

// getCart returns the cart lines with the recomputed total.
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	h.writeCart(w, st)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)

	var productID string
	if err := decodeObject(r, func(d *jx.Decoder, key string) error {
		if key != "productId" {
			return d.Skip()
		}
		v, err := d.Str()
		productID = v
		return err
	}); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	if err := st.AddToCart(productID); err != nil {
		respondError(w, r, err)
		return
	}
	h.writeCart(w, st)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	st.RemoveFromCart(r.PathValue("productId"))
	h.writeCart(w, st)
}

func (h *Handler) setCartOpen(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)

	var open bool
	if err := decodeObject(r, func(d *jx.Decoder, key string) error {
		if key != "open" {
			return d.Skip()
		}
		v, err := d.Bool()
		open = v
		return err
	}); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	st.SetCartOpen(open)
	w.WriteHeader(http.StatusNoContent)
}

// checkout places the order. An empty cart is not an error: it answers 200
// with placed=false and the store posts the empty-cart notice.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)

	conf, placed := st.PlaceOrder()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("placed")
		e.Bool(placed)
		if placed {
			e.FieldStart("orderId")
			e.Str(conf.ID)
			e.FieldStart("placedAt")
			e.Str(conf.PlacedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))
			e.FieldStart("total")
			e.Str(conf.Total.String())
			e.FieldStart("lines")
			e.Int(conf.Lines)
		}
		e.ObjEnd()
	})
}

func (h *Handler) writeCart(w http.ResponseWriter, st *store.Store) {
	lines := st.CartLines()
	lang := st.Language()

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("lines")
		e.ArrStart()
		for _, l := range lines {
			e.ObjStart()
			e.FieldStart("product")
			encodeProduct(e, l.Product.Localize(lang))
			e.FieldStart("quantity")
			e.Int(l.Quantity)
			e.FieldStart("lineTotal")
			e.Str(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))).String())
			e.ObjEnd()
		}
		e.ArrEnd()
		e.FieldStart("total")
		e.Str(st.CartTotal().String())
		e.FieldStart("distinctLines")
		e.Int(st.DistinctLines())
		e.FieldStart("totalQuantity")
		e.Int(st.TotalQuantity())
		e.ObjEnd()
	})
}

// getContent returns the about-us document localized for the session
// language, alongside the raw per-language maps for the admin editor.
func (h *Handler) getContent(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)

	var doc content.AppContent
	if h.content != nil {
		var err error
		doc, err = h.content.Get(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
	}

	localized := doc.Localize(st.Language())
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("ceoName")
		e.Str(localized.CEOName)
		e.FieldStart("ceoBio")
		e.Str(localized.CEOBio)
		e.FieldStart("companyBio")
		e.Str(localized.CompanyBio)
		e.FieldStart("companyVideoUrl")
		e.Str(localized.CompanyVideoURL)
		e.ObjEnd()
	})
}

func (h *Handler) getNotices(w http.ResponseWriter, r *http.Request) {
	st := h.session(w, r)
	notices := st.Notices()

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("notices")
		e.ArrStart()
		for _, n := range notices {
			encodeNotice(e, n)
		}
		e.ArrEnd()
		e.ObjEnd()
	})
}
