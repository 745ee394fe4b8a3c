package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/remote"
)

// Compile-time checks against the remote contracts.
var (
	_ remote.Feed   = (*CatalogStore)(nil)
	_ remote.Writer = (*CatalogStore)(nil)
)

// CatalogStore implements the catalog feed and write API over the products
// collection.
type CatalogStore struct {
	client *Client
}

// NewCatalogStore returns a CatalogStore using the given client.
func NewCatalogStore(client *Client) *CatalogStore {
	return &CatalogStore{client: client}
}

func (s *CatalogStore) col() *firestore.CollectionRef {
	return s.client.fs.Collection(s.client.cfg.ProductsCollection)
}

// query orders by document id so every snapshot arrives in a stable,
// id-sorted order.
func (s *CatalogStore) query() firestore.Query {
	return s.col().OrderBy(firestore.DocumentID, firestore.Asc)
}

// Watch subscribes to the products collection and invokes apply with a full
// snapshot on every change push. It blocks until ctx is cancelled or the
// subscription fails.
func (s *CatalogStore) Watch(ctx context.Context, apply func(remote.Snapshot)) error {
	it := s.query().Snapshots(ctx)
	defer it.Stop()

	for {
		qsnap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return ctx.Err()
			}
			return errors.Wrap(err, "catalog subscription")
		}

		docs, err := qsnap.Documents.GetAll()
		if err != nil {
			return errors.Wrap(err, "read snapshot documents")
		}

		products := make([]catalog.Product, 0, len(docs))
		for _, doc := range docs {
			p, err := docToProduct(doc)
			if err != nil {
				// A malformed document must not take the whole feed down;
				// skip it and keep the rest of the snapshot.
				continue
			}
			products = append(products, p)
		}
		apply(remote.Snapshot{Products: products, At: qsnap.ReadTime})
	}
}

// Create inserts a new product document with a remote-assigned id.
func (s *CatalogStore) Create(ctx context.Context, p catalog.Product) (string, error) {
	ref := s.col().NewDoc()
	if _, err := ref.Create(ctx, productToDoc(p)); err != nil {
		return "", &remote.WriteError{Op: "create", Err: err}
	}
	return ref.ID, nil
}

// CreateWithID inserts a product document under a fixed id. It reports
// false without error when a document with that id already exists, which
// makes seeding idempotent.
func (s *CatalogStore) CreateWithID(ctx context.Context, id string, p catalog.Product) (bool, error) {
	if _, err := s.col().Doc(id).Create(ctx, productToDoc(p)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, &remote.WriteError{Op: "create", Err: err}
	}
	return true, nil
}

// FullReplace overwrites the document for id in its entirety.
func (s *CatalogStore) FullReplace(ctx context.Context, id string, p catalog.Product) error {
	if _, err := s.col().Doc(id).Set(ctx, productToDoc(p)); err != nil {
		return &remote.WriteError{Op: "replace", Err: err}
	}
	return nil
}

// MergeFields merges the leaves of the nested fields map into the document
// for id. Leaves of nested maps are individual merge paths, so writing
// {"name": {"ko": ...}} preserves name.ja and name.en.
func (s *CatalogStore) MergeFields(ctx context.Context, id string, fields map[string]any) error {
	if _, err := s.col().Doc(id).Set(ctx, fields, firestore.MergeAll); err != nil {
		return &remote.WriteError{Op: "merge", Err: err}
	}
	return nil
}

// Delete removes the document for id. Firestore treats deleting an absent
// document as success, matching the contract.
func (s *CatalogStore) Delete(ctx context.Context, id string) error {
	if _, err := s.col().Doc(id).Delete(ctx); err != nil {
		return &remote.WriteError{Op: "delete", Err: err}
	}
	return nil
}

// productDoc is the stored document shape. Localized fields are nested
// per-language-code string maps.
type productDoc struct {
	Name                map[string]string `firestore:"name"`
	ShortDescription    map[string]string `firestore:"shortDescription"`
	DetailedDescription map[string]string `firestore:"detailedDescription"`
	Price               float64           `firestore:"price"`
	Image               string            `firestore:"image"`
	Category            string            `firestore:"category"`
}

func docToProduct(doc *firestore.DocumentSnapshot) (catalog.Product, error) {
	var d productDoc
	if err := doc.DataTo(&d); err != nil {
		return catalog.Product{}, errors.Wrapf(err, "decode product %s", doc.Ref.ID)
	}

	p := catalog.Product{
		ID:                  doc.Ref.ID,
		Name:                textFromDoc(d.Name),
		ShortDescription:    textFromDoc(d.ShortDescription),
		DetailedDescription: textFromDoc(d.DetailedDescription),
		Price:               decimal.NewFromFloat(d.Price),
		Image:               d.Image,
	}
	// Stored category spellings drifted across dataset revisions; normalize
	// here so the rest of the system only sees canonical codes. Unknown
	// spellings pass through raw and surface as uncategorized.
	if c, ok := catalog.CanonicalCategory(d.Category); ok {
		p.Category = c
	} else {
		p.Category = catalog.Category(d.Category)
	}
	return p, nil
}

func productToDoc(p catalog.Product) productDoc {
	return productDoc{
		Name:                textToDoc(p.Name),
		ShortDescription:    textToDoc(p.ShortDescription),
		DetailedDescription: textToDoc(p.DetailedDescription),
		Price:               p.Price.InexactFloat64(),
		Image:               p.Image,
		Category:            string(p.Category),
	}
}

func textFromDoc(m map[string]string) catalog.LocalizedText {
	if len(m) == 0 {
		return nil
	}
	out := make(catalog.LocalizedText, len(m))
	for k, v := range m {
		out[catalog.Language(k)] = v
	}
	return out
}

func textToDoc(t catalog.LocalizedText) map[string]string {
	if len(t) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(t))
	for k, v := range t {
		out[string(k)] = v
	}
	return out
}
