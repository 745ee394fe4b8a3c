// Package handler exposes the storefront state model over HTTP/JSON. Each
// browser session maps to one server-side store; the session cookie is the
// only client-held state.
package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/faushop/storefront/internal/remote"
	"github.com/faushop/storefront/internal/store"
	"github.com/faushop/storefront/internal/translate"
)

// DefaultSessionCookie is the session cookie name.
const DefaultSessionCookie = "fau_session"

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// AdminToken is the shared secret gating the admin endpoints. An empty
	// token disables the admin surface entirely.
	AdminToken string
	// SettingsPath is where the remote-connection settings blob is stored.
	SettingsPath string
	// CookieName overrides the session cookie name.
	CookieName string
	// SecureCookies marks session cookies Secure. Off for local development.
	SecureCookies bool
}

// Handler serves the storefront API.
type Handler struct {
	cfg        Config
	sessions   *store.Sessions
	content    remote.ContentStore
	translator translate.Translator
	lg         *zap.Logger
}

// New constructs a Handler. content may be nil when no remote store is
// configured yet; the content endpoints then return empty documents. A nil
// translator turns the translate preview into an echo.
func New(cfg Config, sessions *store.Sessions, content remote.ContentStore, translator translate.Translator, lg *zap.Logger) *Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultSessionCookie
	}
	if translator == nil {
		translator = translate.Noop{}
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Handler{
		cfg:        cfg,
		sessions:   sessions,
		content:    content,
		translator: translator,
		lg:         lg,
	}
}

// CookieName returns the session cookie name in use.
func (h *Handler) CookieName() string { return h.cfg.CookieName }

// Routes registers every endpoint on a fresh mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/session", h.getSession)
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("GET /api/categories", h.listCategories)
	mux.HandleFunc("PUT /api/filter", h.setFilter)
	mux.HandleFunc("PUT /api/language", h.setLanguage)
	mux.HandleFunc("POST /api/language/next", h.cycleLanguage)
	mux.HandleFunc("PUT /api/page", h.setPage)

	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("POST /api/cart", h.addToCart)
	mux.HandleFunc("DELETE /api/cart/{productId}", h.removeFromCart)
	mux.HandleFunc("PUT /api/cart/open", h.setCartOpen)
	mux.HandleFunc("POST /api/checkout", h.checkout)

	mux.HandleFunc("GET /api/content", h.getContent)
	mux.HandleFunc("GET /api/notices", h.getNotices)

	mux.HandleFunc("POST /api/admin/login", h.adminLogin)
	mux.HandleFunc("POST /api/admin/products", h.adminUpsertProduct)
	mux.HandleFunc("DELETE /api/admin/products/{id}", h.adminDeleteProduct)
	mux.HandleFunc("PUT /api/admin/content", h.adminUpdateContent)
	mux.HandleFunc("POST /api/admin/translate", h.adminTranslatePreview)
	mux.HandleFunc("GET /api/admin/pending", h.adminPendingWrites)
	mux.HandleFunc("POST /api/admin/settings", h.adminSaveSettings)

	return mux
}

// session resolves the request's store, creating a session and setting the
// cookie on first contact.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *store.Store {
	var token string
	if c, err := r.Cookie(h.cfg.CookieName); err == nil {
		token = c.Value
	}

	issued, st := h.sessions.Get(token)
	if issued != token {
		http.SetCookie(w, &http.Cookie{
			Name:     h.cfg.CookieName,
			Value:    issued,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.cfg.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return st
}
