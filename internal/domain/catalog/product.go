package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item as mirrored from the remote store. The
// remote document id is stable for the record's lifetime and uniquely
// identifies the product within a snapshot.
type Product struct {
	ID                  string
	Name                LocalizedText
	ShortDescription    LocalizedText
	DetailedDescription LocalizedText
	Price               decimal.Decimal
	Image               string
	Category            Category
}

// ProductNotFoundError indicates a product id absent from the current
// catalog snapshot, e.g. removed remotely since the last render.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// LocalizedProduct is a Product with its localized fields resolved for one
// display language. This is the shape handed to the page layer.
type LocalizedProduct struct {
	ID                  string
	Name                string
	ShortDescription    string
	DetailedDescription string
	Price               decimal.Decimal
	Image               string
	Category            Category
	CategoryLabel       string
}

// Localize resolves every localized field of p for lang.
func (p Product) Localize(lang Language) LocalizedProduct {
	return LocalizedProduct{
		ID:                  p.ID,
		Name:                p.Name.Resolve(lang),
		ShortDescription:    p.ShortDescription.Resolve(lang),
		DetailedDescription: p.DetailedDescription.Resolve(lang),
		Price:               p.Price,
		Image:               p.Image,
		Category:            p.Category,
		CategoryLabel:       p.Category.Label(lang),
	}
}
