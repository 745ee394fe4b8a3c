package store

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/domain/content"
	"github.com/faushop/storefront/internal/remote"
	"github.com/faushop/storefront/internal/translate"
)

// fakeWriter records remote writes and can be told to fail.
type fakeWriter struct {
	failWith error

	created []catalog.Product
	merges  map[string]map[string]any
	deleted []string
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{merges: make(map[string]map[string]any)}
}

func (w *fakeWriter) Create(_ context.Context, p catalog.Product) (string, error) {
	if w.failWith != nil {
		return "", w.failWith
	}
	w.created = append(w.created, p)
	return "new-id", nil
}

func (w *fakeWriter) FullReplace(_ context.Context, _ string, _ catalog.Product) error {
	return w.failWith
}

func (w *fakeWriter) MergeFields(_ context.Context, id string, fields map[string]any) error {
	if w.failWith != nil {
		return w.failWith
	}
	w.merges[id] = fields
	return nil
}

func (w *fakeWriter) Delete(_ context.Context, id string) error {
	if w.failWith != nil {
		return w.failWith
	}
	w.deleted = append(w.deleted, id)
	return nil
}

// fakeContentStore records about-us merges.
type fakeContentStore struct {
	failWith error
	merged   map[string]any
}

func (c *fakeContentStore) Get(_ context.Context) (content.AppContent, error) {
	return content.AppContent{}, nil
}

func (c *fakeContentStore) Merge(_ context.Context, fields map[string]any) error {
	if c.failWith != nil {
		return c.failWith
	}
	c.merged = fields
	return nil
}

// suffixTranslator appends the target language code, making translations
// recognizable in assertions.
type suffixTranslator struct{}

func (suffixTranslator) Translate(_ context.Context, text string, target, _ catalog.Language) (string, error) {
	return text + "/" + string(target), nil
}

// failingTranslator degrades every call to the original text.
type failingTranslator struct{}

func (failingTranslator) Translate(_ context.Context, text string, _, _ catalog.Language) (string, error) {
	return text, errors.New("model unavailable")
}

func newAdminStore(t *testing.T, w remote.Writer, tr translate.Translator) *Store {
	t.Helper()
	c := NewCatalog()
	c.Replace(demoSnapshot())
	return New(c, w, tr, nil)
}

func TestUpsertProductValidation(t *testing.T) {
	w := newFakeWriter()
	s := newAdminStore(t, w, nil)

	_, err := s.UpsertProduct(context.Background(), ProductDraft{
		Name:     "x",
		Price:    decimal.NewFromInt(-1),
		Category: "hypnosis",
	})
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = s.UpsertProduct(context.Background(), ProductDraft{
		Name:     "x",
		Price:    decimal.NewFromInt(10),
		Category: "electronics",
	})
	var invalid *catalog.InvalidFilterError
	require.ErrorAs(t, err, &invalid)

	assert.Empty(t, w.created, "nothing written on validation failure")
	assert.Empty(t, s.PendingWrites())
}

func TestUpsertProductCreate(t *testing.T) {
	w := newFakeWriter()
	s := newAdminStore(t, w, nil)
	require.NoError(t, s.SetLanguage("ko"))

	id, err := s.UpsertProduct(context.Background(), ProductDraft{
		Name:             "새 상품",
		ShortDescription: "설명",
		Price:            decimal.NewFromInt(100),
		Category:         "催眠類",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)

	require.Len(t, w.created, 1)
	created := w.created[0]
	assert.Equal(t, catalog.CategoryHypnosis, created.Category, "category normalized")
	assert.Equal(t, "새 상품", created.Name[catalog.LangKO])
	_, hasJA := created.Name[catalog.LangJA]
	assert.False(t, hasJA, "no placeholder text for other languages")

	// The ack is tracked until the feed echoes it back.
	assert.Equal(t, []string{"new-id"}, s.PendingWrites())
}

func TestUpsertProductMergeKeepsOtherLanguages(t *testing.T) {
	w := newFakeWriter()
	s := newAdminStore(t, w, nil)
	require.NoError(t, s.SetLanguage("ko"))

	_, err := s.UpsertProduct(context.Background(), ProductDraft{
		ID:       "p1",
		Name:     "상품 1",
		Price:    decimal.NewFromInt(299),
		Category: "hypnosis",
	})
	require.NoError(t, err)

	fields, ok := w.merges["p1"]
	require.True(t, ok)

	name, ok := fields[remote.FieldName].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "상품 1", name["ko"])
	_, hasJA := name["ja"]
	assert.False(t, hasJA, "merge names only the submitted language")

	// Scalars are written alongside.
	assert.Equal(t, "hypnosis", fields[remote.FieldCategory])
	_, hasImage := fields[remote.FieldImage]
	assert.False(t, hasImage, "empty image leaves the stored one alone")
}

func TestUpsertProductAutoTranslate(t *testing.T) {
	w := newFakeWriter()
	s := newAdminStore(t, w, suffixTranslator{})
	require.NoError(t, s.SetLanguage("en"))

	_, err := s.UpsertProduct(context.Background(), ProductDraft{
		ID:            "p1",
		Name:          "Gadget",
		Price:         decimal.NewFromInt(10),
		Category:      "tsf",
		AutoTranslate: true,
	})
	require.NoError(t, err)

	name := w.merges["p1"][remote.FieldName].(map[string]any)
	assert.Equal(t, "Gadget", name["en"])
	assert.Equal(t, "Gadget/ja", name["ja"])
	assert.Equal(t, "Gadget/ko", name["ko"])
	assert.Len(t, name, len(catalog.Languages))
}

func TestUpsertProductTranslateDegrades(t *testing.T) {
	w := newFakeWriter()
	s := newAdminStore(t, w, failingTranslator{})
	require.NoError(t, s.SetLanguage("en"))

	_, err := s.UpsertProduct(context.Background(), ProductDraft{
		ID:            "p1",
		Name:          "Gadget",
		Price:         decimal.NewFromInt(10),
		Category:      "tsf",
		AutoTranslate: true,
	})
	require.NoError(t, err, "translation failure never fails the write")

	name := w.merges["p1"][remote.FieldName].(map[string]any)
	assert.Equal(t, "Gadget", name["en"])
	_, hasJA := name["ja"]
	assert.False(t, hasJA, "failed translations are skipped, not written")

	var kinds []NoticeKind
	for _, n := range s.Notices() {
		kinds = append(kinds, n.Kind)
	}
	assert.Contains(t, kinds, NoticeSoftWarning)
	assert.Contains(t, kinds, NoticeWriteOK)
}

func TestUpsertProductWriteFailure(t *testing.T) {
	w := newFakeWriter()
	w.failWith = &remote.WriteError{Op: "merge", Err: errors.New("unavailable")}
	s := newAdminStore(t, w, nil)

	_, err := s.UpsertProduct(context.Background(), ProductDraft{
		ID:       "p1",
		Name:     "x",
		Price:    decimal.NewFromInt(1),
		Category: "tsf",
	})
	var writeErr *remote.WriteError
	require.ErrorAs(t, err, &writeErr)

	assert.Empty(t, s.PendingWrites(), "failed writes are not tracked")
	notices := s.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeWriteFailed, notices[0].Kind)
}

func TestDeleteProduct(t *testing.T) {
	w := newFakeWriter()
	s := newAdminStore(t, w, nil)

	require.NoError(t, s.DeleteProduct(context.Background(), "p3"))
	assert.Equal(t, []string{"p3"}, w.deleted)

	// No optimistic local removal: the product stays until the feed says so.
	_, ok := s.Catalog().Get("p3")
	assert.True(t, ok)
	assert.Equal(t, []string{"p3"}, s.PendingWrites())

	err := s.DeleteProduct(context.Background(), "ghost")
	var notFound *catalog.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPendingWritesReconcile(t *testing.T) {
	w := newFakeWriter()
	s := newAdminStore(t, w, nil)
	require.NoError(t, s.SetLanguage("en"))

	_, err := s.UpsertProduct(context.Background(), ProductDraft{
		ID:       "p1",
		Name:     "Renamed",
		Price:    decimal.NewFromInt(299),
		Category: "hypnosis",
	})
	require.NoError(t, err)
	require.NoError(t, s.DeleteProduct(context.Background(), "p2"))
	assert.Equal(t, []string{"p1", "p2"}, s.PendingWrites())

	// The feed echoes both writes back: p1 renamed, p2 gone.
	p1 := demoProduct("p1", 299, catalog.CategoryHypnosis)
	p1.Name = catalog.LocalizedText{catalog.LangEN: "Renamed"}
	s.Catalog().Replace(remote.Snapshot{Products: []catalog.Product{p1}})

	assert.Empty(t, s.PendingWrites())
}

func TestPendingWritesReconcileClearedName(t *testing.T) {
	w := newFakeWriter()
	s := newAdminStore(t, w, nil)
	require.NoError(t, s.SetLanguage("en"))

	// Clearing the English name must reconcile too: the echoed snapshot has
	// no "en" leaf, which matches the empty submitted value.
	_, err := s.UpsertProduct(context.Background(), ProductDraft{
		ID:       "p1",
		Name:     "",
		Price:    decimal.NewFromInt(299),
		Category: "hypnosis",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, s.PendingWrites())

	p1 := demoProduct("p1", 299, catalog.CategoryHypnosis)
	p1.Name = catalog.LocalizedText{catalog.LangJA: "商品 1"}
	s.Catalog().Replace(remote.Snapshot{Products: []catalog.Product{p1}})

	assert.Empty(t, s.PendingWrites())
}

func TestUpdateContent(t *testing.T) {
	cs := &fakeContentStore{}
	s := newAdminStore(t, newFakeWriter(), nil)
	require.NoError(t, s.SetLanguage("zh-tw"))

	err := s.UpdateContent(context.Background(), cs, ContentDraft{
		CEOName: "黑川 智慧",
		CEOBio:  "簡介",
	})
	require.NoError(t, err)

	require.NotNil(t, cs.merged)
	name := cs.merged[remote.FieldCEOName].(map[string]any)
	assert.Equal(t, "黑川 智慧", name["zh-tw"])
	_, hasCompany := cs.merged[remote.FieldCompanyBio]
	assert.False(t, hasCompany, "empty fields are skipped")
}

func TestUpdateContentAllEmpty(t *testing.T) {
	cs := &fakeContentStore{failWith: errors.New("must not be called")}
	s := newAdminStore(t, newFakeWriter(), nil)

	require.NoError(t, s.UpdateContent(context.Background(), cs, ContentDraft{}))
	assert.Nil(t, cs.merged)
}
