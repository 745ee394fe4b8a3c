// Package remote defines the contracts between the local state store and the
// externally-owned document database. Concrete wire behaviour lives in
// internal/storage/firestore.
package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/faushop/storefront/internal/domain/catalog"
	"github.com/faushop/storefront/internal/domain/content"
)

// Snapshot is one complete push of catalog state from the real-time
// subscription. Product order is the remote collection order and is
// preserved through to the filtered views.
type Snapshot struct {
	Products []catalog.Product
	At       time.Time
}

// Feed is the push subscription delivering whole-catalog snapshots. Watch
// blocks until ctx is cancelled or the subscription fails, invoking apply
// for every snapshot as it arrives. apply is called from a single goroutine.
type Feed interface {
	Watch(ctx context.Context, apply func(Snapshot)) error
}

// Writer is the remote mutation surface consumed by admin operations. All
// calls are fire-and-report: a failed write leaves local state untouched and
// its effect, when successful, is observed separately through the next Feed
// snapshot.
type Writer interface {
	// Create inserts a new product record and returns its remote-assigned id.
	Create(ctx context.Context, p catalog.Product) (string, error)
	// FullReplace overwrites the record for id with p in its entirety.
	FullReplace(ctx context.Context, id string, p catalog.Product) error
	// MergeFields merges the leaves of the nested fields map into the record
	// for id, leaving unnamed fields untouched. This is the primitive behind
	// the merge-not-replace localization rule.
	MergeFields(ctx context.Context, id string, fields map[string]any) error
	// Delete removes the record for id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

// ContentStore reads and merge-writes the about-us content document.
type ContentStore interface {
	Get(ctx context.Context) (content.AppContent, error)
	Merge(ctx context.Context, fields map[string]any) error
}

// WriteError reports a rejected or failed remote write. Callers treat it as
// transient: local state is unchanged and the user must re-trigger the
// action, there is no automatic retry.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("remote write %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
