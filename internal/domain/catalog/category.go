package catalog

import "fmt"

// Category is a storage-canonical product category code. The code is what is
// persisted and filtered on; display labels are looked up per language.
type Category string

// Canonical category codes. The stored dataset predates this enumeration and
// contains several drifted spellings per category, so reads must go through
// CanonicalCategory.
const (
	CategoryHypnosis   Category = "hypnosis"
	CategoryPossession Category = "possession"
	CategoryTSF        Category = "tsf"
	CategoryAgentGear  Category = "agent-gear"
)

// FilterAll is the category filter value that selects the whole catalog.
// It is a filter value only, never a stored category.
const FilterAll = "all"

// Categories lists every canonical category in display order.
var Categories = []Category{
	CategoryHypnosis,
	CategoryPossession,
	CategoryTSF,
	CategoryAgentGear,
}

// categoryAliases maps every category spelling observed in stored data onto
// its canonical code. Older dataset revisions renamed codes in place
// (e.g. 催眠類 vs 催眠用), so each known variant is listed here instead of
// being matched ad hoc at call sites.
var categoryAliases = map[string]Category{
	"hypnosis":   CategoryHypnosis,
	"催眠類":        CategoryHypnosis,
	"催眠用":        CategoryHypnosis,
	"催眠类":        CategoryHypnosis,
	"possession": CategoryPossession,
	"附身類":        CategoryPossession,
	"附身类":        CategoryPossession,
	"tsf":        CategoryTSF,
	"TSF類":       CategoryTSF,
	"TSF类":       CategoryTSF,
	"agent-gear": CategoryAgentGear,
	"特工用品":       CategoryAgentGear,
}

// categoryLabels holds the per-language display labels for each canonical
// code, taken from the storefront's translation tables.
var categoryLabels = map[Category]LocalizedText{
	CategoryHypnosis: {
		LangJA: "催眠類", LangEN: "Hypnosis", LangZHTW: "催眠類", LangZHCN: "催眠类", LangKO: "최면",
	},
	CategoryPossession: {
		LangJA: "附身類", LangEN: "Possession", LangZHTW: "附身類", LangZHCN: "附身类", LangKO: "빙의",
	},
	CategoryTSF: {
		LangJA: "TSF類", LangEN: "TSF", LangZHTW: "TSF類", LangZHCN: "TSF类", LangKO: "TSF",
	},
	CategoryAgentGear: {
		LangJA: "特工用品", LangEN: "Agent Gear", LangZHTW: "特工用品", LangZHCN: "特工用品", LangKO: "요원 장비",
	},
}

// InvalidFilterError indicates a category filter value outside the
// enumerated set.
type InvalidFilterError struct {
	Value string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid category filter %q", e.Value)
}

// CanonicalCategory maps a stored or user-supplied category spelling onto its
// canonical code. Unknown spellings return false; such products are treated
// as uncategorized rather than being dropped.
func CanonicalCategory(raw string) (Category, bool) {
	c, ok := categoryAliases[raw]
	return c, ok
}

// ParseFilter validates a category filter value: either FilterAll or any
// known spelling of a canonical category.
func ParseFilter(raw string) (string, error) {
	if raw == FilterAll {
		return FilterAll, nil
	}
	if c, ok := CanonicalCategory(raw); ok {
		return string(c), nil
	}
	return "", &InvalidFilterError{Value: raw}
}

// Label returns the display label for the category in the given language.
// Unknown categories fall back to their raw code.
func (c Category) Label(lang Language) string {
	if labels, ok := categoryLabels[c]; ok {
		return labels.Resolve(lang)
	}
	return string(c)
}
