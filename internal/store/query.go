package store

import (
	"sort"
	"strings"

	"giftoria/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey enumerates the shop view sort orders.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

// CategoryAll is the sentinel meaning no category filter, alongside the
// empty string.
const CategoryAll = "All"

// ShopQuery describes the shop view's filter and sort inputs. Category and
// search combine as a logical AND when both are non-empty; the search term
// matches case-insensitively against name, description, and category.
type ShopQuery struct {
	Category string
	Search   string
	Sort     SortKey
}

// Apply filters and sorts the given products. The input slice is not
// modified; the pass is pure and cheap at catalog scale.
func (q ShopQuery) Apply(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(q.Search))
	filterCategory := q.Category != "" && q.Category != CategoryAll

	for _, p := range products {
		if filterCategory && p.Category != q.Category {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}

	q.sortProducts(out)
	return out
}

func matchesSearch(p domain.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

func (q ShopQuery) sortProducts(products []domain.Product) {
	switch q.Sort {
	case SortOldest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.Before(products[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortNameAsc:
		c := newNameCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	case SortNameDesc:
		c := newNameCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) > 0
		})
	default:
		// newest
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// newNameCollator builds the locale-aware comparator used for name sorts.
// Collators are not safe for concurrent use, so each sort gets its own.
func newNameCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// ParseSortKey maps a raw query parameter onto a SortKey, falling back to
// newest for anything unrecognized.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortOldest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return SortKey(raw)
	default:
		return SortNewest
	}
}
