package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/remote"
	"github.com/faushop/storefront/internal/store"
)

// maxBodyBytes caps request bodies. Product descriptions are the largest
// legitimate payload and stay well under this.
const maxBodyBytes = 1 << 20

// writeJSON encodes a response body with jx and writes it with the given
// status code.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	e := &jx.Encoder{}
	encode(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeErr writes the uniform error body {code, message}.
func writeErr(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("code")
		e.Str(code)
		e.FieldStart("message")
		e.Str(message)
		e.ObjEnd()
	})
}

// respondError maps domain errors onto HTTP statuses and stable error codes.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound    *catalog.ProductNotFoundError
		badFilter   *catalog.InvalidFilterError
		badLanguage *catalog.UnsupportedLanguageError
		writeFailed *remote.WriteError
	)
	switch {
	case errors.As(err, &notFound):
		writeErr(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.As(err, &badFilter):
		writeErr(w, http.StatusBadRequest, "invalid_filter", err.Error())
	case errors.As(err, &badLanguage):
		writeErr(w, http.StatusBadRequest, "unsupported_language", err.Error())
	case errors.Is(err, store.ErrUnknownPage):
		writeErr(w, http.StatusBadRequest, "unknown_page", err.Error())
	case errors.Is(err, store.ErrNegativePrice):
		writeErr(w, http.StatusUnprocessableEntity, "invalid_price", err.Error())
	case errors.As(err, &writeFailed):
		zctx.From(r.Context()).Warn("remote write failed", zap.Error(err))
		writeErr(w, http.StatusBadGateway, "remote_write_failed", "the remote store rejected the write")
	default:
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// decodeObject reads and decodes a JSON object body, dispatching each
// top-level key to fn. Unknown keys are skipped.
func decodeObject(r *http.Request, fn func(d *jx.Decoder, key string) error) error {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(err, "read body")
	}

	d := jx.DecodeBytes(body)
	return d.Obj(func(d *jx.Decoder, key string) error {
		return fn(d, key)
	})
}

// encodeProduct writes one localized product object.
func encodeProduct(e *jx.Encoder, p catalog.LocalizedProduct) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(p.ID)
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("shortDescription")
	e.Str(p.ShortDescription)
	e.FieldStart("detailedDescription")
	e.Str(p.DetailedDescription)
	e.FieldStart("price")
	e.Str(p.Price.String())
	e.FieldStart("image")
	e.Str(p.Image)
	e.FieldStart("category")
	e.Str(string(p.Category))
	e.FieldStart("categoryLabel")
	e.Str(p.CategoryLabel)
	e.ObjEnd()
}

// encodeNotice writes one transient banner object.
func encodeNotice(e *jx.Encoder, n store.Notice) {
	e.ObjStart()
	e.FieldStart("kind")
	e.Str(string(n.Kind))
	e.FieldStart("message")
	e.Str(n.Message)
	e.FieldStart("postedAt")
	e.Str(n.PostedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	e.ObjEnd()
}
