package store

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/remote"
)

// ContentDraft carries an about-us edit in the editor's current UI language.
type ContentDraft struct {
	CEOName         string
	CEOBio          string
	CompanyBio      string
	CompanyVideoURL string
}

// draftTexts holds the localized product fields for one language.
type draftTexts struct {
	name   string
	short  string
	detail string
}

// UpsertProduct merges a single-language admin edit into the remote record.
// For an existing product only the submitted language's text leaves are
// written, so editing a product while viewing it in Korean never erases its
// Japanese or English text. A new product is created with maps holding the
// submitted language only (plus best-effort auto-translations when asked).
//
// The write is acknowledged independently of the next feed snapshot; on
// success the product id is tracked as pending confirmation. On failure no
// local state changes besides the transient failure notice.
func (s *Store) UpsertProduct(ctx context.Context, draft ProductDraft) (string, error) {
	if draft.Price.IsNegative() {
		return "", ErrNegativePrice
	}
	cat, ok := catalog.CanonicalCategory(draft.Category)
	if !ok {
		return "", &catalog.InvalidFilterError{Value: draft.Category}
	}

	lang := s.Language()
	texts := map[catalog.Language]draftTexts{
		lang: {name: draft.Name, short: draft.ShortDescription, detail: draft.DetailedDescription},
	}
	if draft.AutoTranslate {
		s.translateDraft(ctx, texts, lang)
	}

	var id string
	if draft.ID == "" {
		p := catalog.Product{
			Name:                make(catalog.LocalizedText, len(texts)),
			ShortDescription:    make(catalog.LocalizedText, len(texts)),
			DetailedDescription: make(catalog.LocalizedText, len(texts)),
			Price:               draft.Price,
			Image:               draft.Image,
			Category:            cat,
		}
		for l, t := range texts {
			if t.name != "" {
				p.Name[l] = t.name
			}
			if t.short != "" {
				p.ShortDescription[l] = t.short
			}
			if t.detail != "" {
				p.DetailedDescription[l] = t.detail
			}
		}

		created, err := s.writer.Create(ctx, p)
		if err != nil {
			s.postNotice(NoticeWriteFailed, "")
			return "", err
		}
		id = created
	} else {
		id = draft.ID
		fields := s.mergeFieldsFor(draft, cat, texts, lang)
		if err := s.writer.MergeFields(ctx, id, fields); err != nil {
			s.postNotice(NoticeWriteFailed, "")
			return "", err
		}
	}

	s.mu.Lock()
	s.pending[id] = pendingWrite{lang: lang, name: draft.Name, since: s.now()}
	s.postNoticeLocked(NoticeWriteOK, "")
	s.mu.Unlock()
	return id, nil
}

// mergeFieldsFor builds the nested merge map for an existing product. Only
// the leaves named here are written; other languages' text is untouched.
func (s *Store) mergeFieldsFor(draft ProductDraft, cat catalog.Category, texts map[catalog.Language]draftTexts, lang catalog.Language) map[string]any {
	name := make(map[string]any, len(texts))
	short := make(map[string]any, len(texts))
	detail := make(map[string]any, len(texts))
	for l, t := range texts {
		// The submitted language is merged unconditionally; auto-translated
		// languages only when the translation produced text.
		if l == lang || t.name != "" {
			name[string(l)] = t.name
		}
		if l == lang || t.short != "" {
			short[string(l)] = t.short
		}
		if l == lang || t.detail != "" {
			detail[string(l)] = t.detail
		}
	}

	fields := map[string]any{
		remote.FieldName:                name,
		remote.FieldShortDescription:    short,
		remote.FieldDetailedDescription: detail,
		remote.FieldPrice:               draft.Price.InexactFloat64(),
		remote.FieldCategory:            string(cat),
	}
	// Uploaded images are session-ephemeral; an empty value means "keep
	// whatever the record has" rather than clearing it.
	if draft.Image != "" {
		fields[remote.FieldImage] = draft.Image
	}
	return fields
}

// translateDraft fills texts for the remaining languages via the configured
// translator. Failures degrade silently to the original text being skipped
// for that language; a single soft warning is posted.
func (s *Store) translateDraft(ctx context.Context, texts map[catalog.Language]draftTexts, source catalog.Language) {
	if s.translator == nil {
		return
	}

	src := texts[source]
	warned := false
	warn := func(target catalog.Language, field string, err error) {
		s.lg.Warn("translation degraded to original text",
			zap.String("target", string(target)),
			zap.String("field", field),
			zap.Error(err),
		)
		if !warned {
			s.postNotice(NoticeSoftWarning, "")
			warned = true
		}
	}

	for _, target := range catalog.Languages {
		if target == source {
			continue
		}
		var t draftTexts
		ok := false
		if src.name != "" {
			out, err := s.translator.Translate(ctx, src.name, target, source)
			if err != nil {
				warn(target, remote.FieldName, err)
			} else {
				t.name, ok = out, true
			}
		}
		if src.short != "" {
			out, err := s.translator.Translate(ctx, src.short, target, source)
			if err != nil {
				warn(target, remote.FieldShortDescription, err)
			} else {
				t.short, ok = out, true
			}
		}
		if src.detail != "" {
			out, err := s.translator.Translate(ctx, src.detail, target, source)
			if err != nil {
				warn(target, remote.FieldDetailedDescription, err)
			} else {
				t.detail, ok = out, true
			}
		}
		if ok {
			texts[target] = t
		}
	}
}

// DeleteProduct requests remote deletion. The local catalog is not touched:
// the authoritative removal is observed only via the next feed snapshot.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	if _, ok := s.catalog.Get(id); !ok {
		return &catalog.ProductNotFoundError{ProductID: id}
	}
	if err := s.writer.Delete(ctx, id); err != nil {
		s.postNotice(NoticeWriteFailed, "")
		return err
	}

	s.mu.Lock()
	s.pending[id] = pendingWrite{deleted: true, since: s.now()}
	s.postNoticeLocked(NoticeWriteOK, "")
	s.mu.Unlock()
	return nil
}

// UpdateContent merges a single-language about-us edit, with the same
// merge-not-replace rule as product text. Empty fields are skipped entirely:
// content fields have no meaningful cleared state.
func (s *Store) UpdateContent(ctx context.Context, contentStore remote.ContentStore, draft ContentDraft) error {
	lang := string(s.Language())

	fields := make(map[string]any, 4)
	put := func(field, value string) {
		if value != "" {
			fields[field] = map[string]any{lang: value}
		}
	}
	put(remote.FieldCEOName, draft.CEOName)
	put(remote.FieldCEOBio, draft.CEOBio)
	put(remote.FieldCompanyBio, draft.CompanyBio)
	put(remote.FieldCompanyVideoURL, draft.CompanyVideoURL)

	if len(fields) == 0 {
		return nil
	}
	if err := contentStore.Merge(ctx, fields); err != nil {
		s.postNotice(NoticeWriteFailed, "")
		return err
	}
	s.postNotice(NoticeWriteOK, "")
	return nil
}

// PendingWrites returns the product ids whose acknowledged writes have not
// yet been confirmed by a feed snapshot. Reconciliation is lazy: entries are
// dropped once the current snapshot reflects the submitted values (for
// deletes, once the id is gone).
func (s *Store) PendingWrites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.pending))
	for id, pw := range s.pending {
		p, ok := s.catalog.Get(id)
		switch {
		case pw.deleted && !ok:
			delete(s.pending, id)
		// Compare the raw leaf, not the resolver: an empty submitted name
		// must match a missing key instead of falling back to another
		// language and keeping the entry pending forever.
		case !pw.deleted && ok && p.Name[pw.lang] == pw.name:
			delete(s.pending, id)
		default:
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
