package handler

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"
)

// adminTokenHeader carries the admin shared secret on gated requests.
const adminTokenHeader = "X-Admin-Token"

// authorizeAdmin checks the admin shared secret. Both sides are hashed
// before the constant-time comparison so length differences leak nothing.
func (h *Handler) authorizeAdmin(r *http.Request) bool {
	if h.cfg.AdminToken == "" {
		return false
	}

	token := r.Header.Get(adminTokenHeader)
	if token == "" {
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if token == "" {
		return false
	}

	got := sha256.Sum256([]byte(token))
	want := sha256.Sum256([]byte(h.cfg.AdminToken))
	return subtle.ConstantTimeCompare(got[:], want[:]) == 1
}

// requireAdmin gates a handler behind the admin secret.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !h.authorizeAdmin(r) {
		writeErr(w, http.StatusUnauthorized, "unauthorized", "admin password required")
		return false
	}
	return true
}
