// Package content holds the editable "about us" page data, mirrored from the
// remote store the same way the product catalog is.
package content

import "github.com/faushop/storefront/internal/domain/catalog"

// AppContent is the small set of named about-us fields. Each field is a
// per-language mapping with the same resolution rules as product text.
type AppContent struct {
	CEOName         catalog.LocalizedText
	CEOBio          catalog.LocalizedText
	CompanyBio      catalog.LocalizedText
	CompanyVideoURL catalog.LocalizedText
}

// Localized is AppContent resolved for one display language.
type Localized struct {
	CEOName         string
	CEOBio          string
	CompanyBio      string
	CompanyVideoURL string
}

// Localize resolves every field of c for lang.
func (c AppContent) Localize(lang catalog.Language) Localized {
	return Localized{
		CEOName:         c.CEOName.Resolve(lang),
		CEOBio:          c.CEOBio.Resolve(lang),
		CompanyBio:      c.CompanyBio.Resolve(lang),
		CompanyVideoURL: c.CompanyVideoURL.Resolve(lang),
	}
}
