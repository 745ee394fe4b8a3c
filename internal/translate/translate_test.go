package translate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faushop/storefront/internal/domain/catalog"
)

func TestNoopReturnsInput(t *testing.T) {
	out, err := Noop{}.Translate(context.Background(), "こんにちは", catalog.LangEN, catalog.LangJA)
	require.NoError(t, err)
	assert.Equal(t, "こんにちは", out)
}

func TestLanguageNamesCoverAllLanguages(t *testing.T) {
	for _, l := range catalog.Languages {
		assert.NotEmpty(t, languageNames[l], "prompt name for %s", l)
	}
}
