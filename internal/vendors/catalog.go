// internal/vendors/catalog.go

// Package vendors implements vendor discovery and ranking: candidate lookup,
// query construction, hard filtering, multi-signal scoring and the
// justification text attached to each staffed task.
package vendors

import (
	"math"
	"strings"

	"github.com/hashicorp/golang-lru/v2"

	"upkept-workers/internal/models"
)

const (
	// DefaultMarketPrice is returned when no catalog entry matches a category.
	DefaultMarketPrice = 500.0

	marketMarkup         = 1.15
	marketPriceCacheSize = 256
)

// Catalog is a read-only vendor collection, seeded once at startup.
// It is safe for concurrent readers.
type Catalog struct {
	vendors []models.Vendor
	byID    map[string]int
	prices  *lru.Cache[string, float64]
}

// NewCatalog copies vs into a new catalog. Later entries with a duplicate id are ignored.
func NewCatalog(vs []models.Vendor) *Catalog {
	prices, _ := lru.New[string, float64](marketPriceCacheSize)

	c := &Catalog{
		vendors: make([]models.Vendor, 0, len(vs)),
		byID:    make(map[string]int, len(vs)),
		prices:  prices,
	}
	for _, v := range vs {
		if _, dup := c.byID[v.ID]; dup {
			continue
		}
		c.byID[v.ID] = len(c.vendors)
		c.vendors = append(c.vendors, v)
	}
	return c
}

// DefaultCatalog returns a catalog over the built-in seed vendors.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultVendors())
}

func (c *Catalog) Len() int {
	return len(c.vendors)
}

// Vendors returns the catalog entries in seed order.
func (c *Catalog) Vendors() []models.Vendor {
	out := make([]models.Vendor, len(c.vendors))
	copy(out, c.vendors)
	return out
}

func (c *Catalog) Get(id string) (models.Vendor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Vendor{}, false
	}
	return c.vendors[i], true
}

// FindVendors returns the candidates for a service: vendors tagged with the
// category, or whose specialty loosely matches it. Catalog order is kept.
func (c *Catalog) FindVendors(service models.ServiceProfile) []models.Vendor {
	key := strings.ToLower(string(service.Category))

	out := make([]models.Vendor, 0)
	for _, v := range c.vendors {
		if v.HasCategory(service.Category) || looseMatchAny(v.Specialty, key) {
			out = append(out, v)
		}
	}
	return out
}

// MarketPrice estimates the going rate for a category or subcategory as the
// mean estimated price of matching vendors plus a 15% markup, rounded.
// Unknown keys fall back to DefaultMarketPrice.
func (c *Catalog) MarketPrice(categoryOrSubcategory string) float64 {
	key := strings.ToLower(strings.TrimSpace(categoryOrSubcategory))
	if key == "" {
		return DefaultMarketPrice
	}
	if price, ok := c.prices.Get(key); ok {
		return price
	}

	var sum float64
	var n int
	for _, v := range c.vendors {
		if looseMatchAny(v.Specialty, key) || looseMatchCategories(v.Categories, key) {
			sum += v.EstimatedPrice
			n++
		}
	}

	price := DefaultMarketPrice
	if n > 0 {
		price = math.Round(sum / float64(n) * marketMarkup)
	}
	c.prices.Add(key, price)
	return price
}

// looseMatchAny reports whether any tag contains key or is contained in it,
// case-insensitively. Short keys can produce false positives ("it" matches
// "security_audit"); callers depend on this exact behavior.
func looseMatchAny(tags []string, key string) bool {
	for _, t := range tags {
		t = strings.ToLower(t)
		if strings.Contains(t, key) || strings.Contains(key, t) {
			return true
		}
	}
	return false
}

func looseMatchCategories(categories []models.ServiceCategory, key string) bool {
	for _, c := range categories {
		cs := string(c)
		if strings.Contains(cs, key) || strings.Contains(key, cs) {
			return true
		}
	}
	return false
}
