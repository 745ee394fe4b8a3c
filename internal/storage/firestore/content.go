package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/go-faster/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/domain/content"
	"github.com/faushop/storefront/internal/remote"
)

var _ remote.ContentStore = (*ContentStore)(nil)

// ContentStore reads and merge-writes the single about-us document.
type ContentStore struct {
	client *Client
}

// NewContentStore returns a ContentStore using the given client.
func NewContentStore(client *Client) *ContentStore {
	return &ContentStore{client: client}
}

func (s *ContentStore) doc() *firestore.DocumentRef {
	return s.client.fs.Collection(s.client.cfg.ContentCollection).Doc(s.client.cfg.ContentDoc)
}

// contentDoc is the stored document shape, mirroring the product
// localization layout.
type contentDoc struct {
	CEOName         map[string]string `firestore:"ceoName"`
	CEOBio          map[string]string `firestore:"ceoBio"`
	CompanyBio      map[string]string `firestore:"companyBio"`
	CompanyVideoURL map[string]string `firestore:"companyVideoUrl"`
}

// Get returns the about-us content. A missing document is not an error: the
// zero value renders as empty text through the usual fallback chain.
func (s *ContentStore) Get(ctx context.Context) (content.AppContent, error) {
	snap, err := s.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return content.AppContent{}, nil
		}
		return content.AppContent{}, errors.Wrap(err, "get content")
	}

	var d contentDoc
	if err := snap.DataTo(&d); err != nil {
		return content.AppContent{}, errors.Wrap(err, "decode content")
	}
	return content.AppContent{
		CEOName:         textFromDoc(d.CEOName),
		CEOBio:          textFromDoc(d.CEOBio),
		CompanyBio:      textFromDoc(d.CompanyBio),
		CompanyVideoURL: textFromDoc(d.CompanyVideoURL),
	}, nil
}

// Merge merges the leaves of the nested fields map into the document,
// creating it when absent.
func (s *ContentStore) Merge(ctx context.Context, fields map[string]any) error {
	if _, err := s.doc().Set(ctx, fields, firestore.MergeAll); err != nil {
		return &remote.WriteError{Op: "merge content", Err: err}
	}
	return nil
}

// Seed writes localized defaults for any content field that has no value in
// any language yet. Used by the seeding tool only.
func (s *ContentStore) Seed(ctx context.Context, c content.AppContent) error {
	existing, err := s.Get(ctx)
	if err != nil {
		return err
	}

	fields := make(map[string]any, 4)
	put := func(field string, have, want catalog.LocalizedText) {
		if len(have) == 0 && len(want) > 0 {
			fields[field] = textToDoc(want)
		}
	}
	put(remote.FieldCEOName, existing.CEOName, c.CEOName)
	put(remote.FieldCEOBio, existing.CEOBio, c.CEOBio)
	put(remote.FieldCompanyBio, existing.CompanyBio, c.CompanyBio)
	put(remote.FieldCompanyVideoURL, existing.CompanyVideoURL, c.CompanyVideoURL)

	if len(fields) == 0 {
		return nil
	}
	return s.Merge(ctx, fields)
}
