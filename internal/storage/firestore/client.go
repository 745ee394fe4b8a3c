// Package firestore implements the remote Feed, Writer, and ContentStore
// contracts against Google Cloud Firestore, which owns all persisted
// storefront data.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/go-faster/errors"
	"google.golang.org/api/option"
)

// Config identifies the Firestore project and document layout.
type Config struct {
	ProjectID       string
	CredentialsFile string
	// ProductsCollection is the catalog collection name.
	ProductsCollection string
	// ContentCollection/ContentDoc address the single about-us document.
	ContentCollection string
	ContentDoc        string
}

func (c *Config) applyDefaults() {
	if c.ProductsCollection == "" {
		c.ProductsCollection = "products"
	}
	if c.ContentCollection == "" {
		c.ContentCollection = "content"
	}
	if c.ContentDoc == "" {
		c.ContentDoc = "about"
	}
}

// Client wraps the Firestore connection with an explicit lifecycle. It is
// constructed once at startup and passed into the stores that need it; there
// are no package-level connection handles.
type Client struct {
	fs  *firestore.Client
	cfg Config
}

// Connect creates the Firestore client. An empty credentials file selects
// Application Default Credentials.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firestore project id is required")
	}
	cfg.applyDefaults()

	var (
		fs  *firestore.Client
		err error
	)
	if cfg.CredentialsFile != "" {
		fs, err = firestore.NewClient(ctx, cfg.ProjectID, option.WithCredentialsFile(cfg.CredentialsFile))
	} else {
		fs, err = firestore.NewClient(ctx, cfg.ProjectID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "create firestore client (project=%s)", cfg.ProjectID)
	}

	return &Client{fs: fs, cfg: cfg}, nil
}

// Ping verifies connectivity with a single bounded read. Firestore has no
// dedicated ping API.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.fs.Collection(c.cfg.ProductsCollection).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return errors.Wrap(err, "firestore ping")
	}
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.fs == nil {
		return nil
	}
	return c.fs.Close()
}
