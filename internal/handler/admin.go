package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/settings"
	"github.com/faushop/storefront/internal/store"
)

// adminLogin verifies the admin password. It exists so the panel can gate
// its UI up front; every admin endpoint still re-checks the secret.
func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var password string
	if err := decodeObject(r, func(d *jx.Decoder, key string) error {
		if key != "password" {
			return d.Skip()
		}
		v, err := d.Str()
		password = v
		return err
	}); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	r.Header.Set(adminTokenHeader, password)
	if !h.authorizeAdmin(r) {
		writeErr(w, http.StatusUnauthorized, "unauthorized", "wrong password")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("ok")
		e.Bool(true)
		e.ObjEnd()
	})
}

// adminUpsertProduct creates or edits a product. The draft carries text in
// the session's current language only; edits merge that language into the
// remote record without touching the others.
func (h *Handler) adminUpsertProduct(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	st := h.session(w, r)

	var draft store.ProductDraft
	if err := decodeObject(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Str()
			draft.ID = v
			return err
		case "name":
			v, err := d.Str()
			draft.Name = v
			return err
		case "shortDescription":
			v, err := d.Str()
			draft.ShortDescription = v
			return err
		case "detailedDescription":
			v, err := d.Str()
			draft.DetailedDescription = v
			return err
		case "price":
			return decodePrice(d, &draft.Price)
		case "image":
			v, err := d.Str()
			draft.Image = v
			return err
		case "category":
			v, err := d.Str()
			draft.Category = v
			return err
		case "autoTranslate":
			v, err := d.Bool()
			draft.AutoTranslate = v
			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	id, err := st.UpsertProduct(r.Context(), draft)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("id")
		e.Str(id)
		e.FieldStart("pending")
		e.Bool(true)
		e.ObjEnd()
	})
}

// decodePrice accepts a JSON number or a numeric string.
func decodePrice(d *jx.Decoder, out *decimal.Decimal) error {
	var raw string
	switch d.Next() {
	case jx.String:
		v, err := d.Str()
		if err != nil {
			return err
		}
		raw = v
	default:
		n, err := d.Num()
		if err != nil {
			return err
		}
		raw = n.String()
	}

	p, err := decimal.NewFromString(raw)
	if err != nil {
		return err
	}
	*out = p
	return nil
}

func (h *Handler) adminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	st := h.session(w, r)

	if err := st.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("pending")
		e.Bool(true)
		e.ObjEnd()
	})
}

func (h *Handler) adminUpdateContent(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	if h.content == nil {
		writeErr(w, http.StatusServiceUnavailable, "no_remote", "remote store is not configured")
		return
	}
	st := h.session(w, r)

	var draft store.ContentDraft
	if err := decodeObject(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "ceoName":
			v, err := d.Str()
			draft.CEOName = v
			return err
		case "ceoBio":
			v, err := d.Str()
			draft.CEOBio = v
			return err
		case "companyBio":
			v, err := d.Str()
			draft.CompanyBio = v
			return err
		case "companyVideoUrl":
			v, err := d.Str()
			draft.CompanyVideoURL = v
			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	if err := st.UpdateContent(r.Context(), h.content, draft); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// adminTranslatePreview translates a snippet into every other supported
// language so the editor can inspect what auto-translate would write.
// Degraded translations come back as the original text, never as an error.
func (h *Handler) adminTranslatePreview(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	st := h.session(w, r)

	var (
		text   string
		source = st.Language()
	)
	if err := decodeObject(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "text":
			v, err := d.Str()
			text = v
			return err
		case "source":
			v, err := d.Str()
			if err != nil {
				return err
			}
			lang, perr := catalog.ParseLanguage(v)
			if perr != nil {
				return perr
			}
			source = lang
			return nil
		default:
			return d.Skip()
		}
	}); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("source")
		e.Str(string(source))
		e.FieldStart("translations")
		e.ObjStart()
		for _, target := range catalog.Languages {
			if target == source {
				continue
			}
			out, _ := h.translator.Translate(r.Context(), text, target, source)
			e.FieldStart(string(target))
			e.Str(out)
		}
		e.ObjEnd()
		e.ObjEnd()
	})
}

// adminPendingWrites lists acknowledged writes the feed has not echoed yet.
func (h *Handler) adminPendingWrites(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	st := h.session(w, r)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("pending")
		e.ArrStart()
		for _, id := range st.PendingWrites() {
			e.Str(id)
		}
		e.ArrEnd()
		e.ObjEnd()
	})
}

// adminSaveSettings persists the remote-connection blob. It takes effect on
// the next restart; the running feed keeps its current connection.
func (h *Handler) adminSaveSettings(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	if h.cfg.SettingsPath == "" {
		writeErr(w, http.StatusServiceUnavailable, "no_settings_path", "settings persistence is not configured")
		return
	}

	var s settings.Settings
	if err := decodeObject(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "projectId":
			v, err := d.Str()
			s.ProjectID = v
			return err
		case "credentialsFile":
			v, err := d.Str()
			s.CredentialsFile = v
			return err
		case "productsCollection":
			v, err := d.Str()
			s.ProductsCollection = v
			return err
		case "contentCollection":
			v, err := d.Str()
			s.ContentCollection = v
			return err
		case "contentDoc":
			v, err := d.Str()
			s.ContentDoc = v
			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	if s.ProjectID == "" {
		writeErr(w, http.StatusUnprocessableEntity, "missing_project", "projectId is required")
		return
	}
	if err := settings.Save(h.cfg.SettingsPath, s); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("saved")
		e.Bool(true)
		e.FieldStart("restartRequired")
		e.Bool(true)
		e.ObjEnd()
	})
}
