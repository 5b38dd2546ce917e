package schedule

import (
	"slices"

	"github.com/FACorreiaa/go-lazy-traveler/internal/types"
)

// CategoryCatalog maps a coarse slot category to its ordered fine-grained
// sub-tags. Static configuration, read-only at request time.
type CategoryCatalog map[string][]string

// DefaultCatalog returns the production category table.
func DefaultCatalog() CategoryCatalog {
	return CategoryCatalog{
		CategorySights:    {"park", "attraction", "exhibition", "bookstore"},
		CategoryFood:      {"bakery", "vietnamese", "brunch", "vegan", "western", "japanese", "chinese", "thai", "pizza", "korean", "burger"},
		CategoryBreakfast: {"korean", "vegan", "brunch"},
		CategoryLateNight: {"bar", "pizza", "burger", "chinese"},
		CategoryCafe:      {"cafe", "brunch", "bakery"},
	}
}

// ResolvePreferences computes the per-category sub-tags to search for. For
// each category the preferred set is the catalog-ordered intersection with
// the user's tags; an empty intersection falls back to the full catalog
// entry, meaning "no preference, accept any sub-tag in this category".
// Duplicate categories keep their first position; empty tags degrade to the
// full catalog everywhere.
func ResolvePreferences(tags types.InterestTagSet, categories []string, catalog CategoryCatalog) types.PreferredTagMapping {
	mapping := make(types.PreferredTagMapping, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))

	for _, category := range categories {
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}

		entry := catalog[category]
		var preferred []string
		for _, sub := range entry {
			if tags.Contains(sub) {
				preferred = append(preferred, sub)
			}
		}
		if len(preferred) == 0 {
			preferred = slices.Clone(entry)
		}

		mapping = append(mapping, types.CategoryPreference{
			Category:  category,
			Preferred: preferred,
			Fallback:  slices.Clone(entry),
		})
	}
	return mapping
}
