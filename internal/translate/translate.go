// Package translate provides best-effort machine translation for admin
// flows. Implementations never fail a caller outright: on any error the
// original text is returned unchanged and the error is advisory only,
// surfaced at most as a soft warning.
package translate

import (
	"context"

	"github.com/faushop/storefront/internal/domain/catalog"
)

// Translator translates text between supported storefront languages. The
// returned string is always usable: it is the translation on success and the
// unmodified input on failure, in which case err describes the degradation.
type Translator interface {
	Translate(ctx context.Context, text string, target, source catalog.Language) (string, error)
}

// Noop is the Translator used when no translation backend is configured.
// It returns the input unchanged and no error.
type Noop struct{}

func (Noop) Translate(_ context.Context, text string, _, _ catalog.Language) (string, error) {
	return text, nil
}
