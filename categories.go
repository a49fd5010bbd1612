package patrimony

import (
	"slices"
	"strings"
)

// Uncategorized is the category of assets that resolve to no category.
const Uncategorized = "uncategorized"

// tickerSeparator separates the base ticker from a lot qualifier in an asset id.
const tickerSeparator = "_"

// BaseTicker returns the asset id without its lot qualifier: the leading
// segment before the first separator, or the whole id if there is none.
func BaseTicker(asset string) string {
	base, _, _ := strings.Cut(asset, tickerSeparator)
	return base
}

// Categories maps assets to their category.
type Categories struct {
	byAsset map[string]string
}

// NewCategories returns an empty category map.
func NewCategories() *Categories {
	return &Categories{byAsset: make(map[string]string)}
}

// Set assigns a category to an asset id. An empty category is Uncategorized.
func (c *Categories) Set(asset, category string) {
	if category == "" {
		category = Uncategorized
	}
	c.byAsset[asset] = category
}

// Resolve returns the category of an asset. It falls back from the full
// asset id to its base ticker, and then to Uncategorized.
func (c *Categories) Resolve(asset string) string {
	if cat, ok := c.byAsset[asset]; ok {
		return cat
	}
	if cat, ok := c.byAsset[BaseTicker(asset)]; ok {
		return cat
	}
	return Uncategorized
}

// All returns every known category sorted by name, Uncategorized included.
func (c *Categories) All() []string {
	all := []string{Uncategorized}
	for _, cat := range c.byAsset {
		if !slices.Contains(all, cat) {
			all = append(all, cat)
		}
	}
	slices.Sort(all)
	return all
}
