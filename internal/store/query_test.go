package store

import (
	"testing"
	"time"

	"giftoria/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryFixture() []domain.Product {
	day := func(d int) time.Time {
		return time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC)
	}
	return []domain.Product{
		{ID: "1", Name: "Wooden Vase", Description: "carved oak vase", Category: "Home Decor", Price: 89.99, CreatedAt: day(1)},
		{ID: "2", Name: "Candle Set", Description: "amber and vanilla", Category: "Home Fragrance", Price: 54.99, CreatedAt: day(2)},
		{ID: "3", Name: "ceramic mug", Description: "handmade mug", Category: "Kitchen", Price: 34.99, CreatedAt: day(3)},
		{ID: "4", Name: "Wall Mirror", Description: "round brass mirror", Category: "Home Decor", Price: 120.00, CreatedAt: day(4)},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestShopQuery_CategoryFilter(t *testing.T) {
	result := ShopQuery{Category: "Home Decor"}.Apply(queryFixture())

	require.Len(t, result, 2)
	for _, p := range result {
		assert.Equal(t, "Home Decor", p.Category)
	}
}

func TestShopQuery_AllSentinelMeansNoFilter(t *testing.T) {
	assert.Len(t, ShopQuery{Category: CategoryAll}.Apply(queryFixture()), 4)
	assert.Len(t, ShopQuery{Category: ""}.Apply(queryFixture()), 4)
}

func TestShopQuery_SearchMatchesNameDescriptionCategory(t *testing.T) {
	fixture := queryFixture()

	// Name match, case-insensitive.
	assert.Equal(t, []string{"1"}, ids(ShopQuery{Search: "VASE", Sort: SortOldest}.Apply(fixture)))

	// Description match.
	assert.Equal(t, []string{"2"}, ids(ShopQuery{Search: "amber"}.Apply(fixture)))

	// Category match.
	assert.Equal(t, []string{"3"}, ids(ShopQuery{Search: "kitchen"}.Apply(fixture)))
}

func TestShopQuery_SearchAndCategoryCombineAsAnd(t *testing.T) {
	// "mirror" matches product 4 only; the category filter must still hold.
	result := ShopQuery{Category: "Home Decor", Search: "mirror"}.Apply(queryFixture())
	assert.Equal(t, []string{"4"}, ids(result))

	// A search hit outside the selected category is excluded, not
	// short-circuited in.
	result = ShopQuery{Category: "Kitchen", Search: "mirror"}.Apply(queryFixture())
	assert.Empty(t, result)
}

func TestShopQuery_Sorts(t *testing.T) {
	fixture := queryFixture()

	tests := []struct {
		name string
		sort SortKey
		want []string
	}{
		{"newest", SortNewest, []string{"4", "3", "2", "1"}},
		{"oldest", SortOldest, []string{"1", "2", "3", "4"}},
		{"price ascending", SortPriceAsc, []string{"3", "2", "1", "4"}},
		{"price descending", SortPriceDesc, []string{"4", "1", "2", "3"}},
		// Locale-aware: "ceramic mug" sorts by letter, not by case bucket.
		{"name ascending", SortNameAsc, []string{"2", "3", "4", "1"}},
		{"name descending", SortNameDesc, []string{"1", "4", "3", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ShopQuery{Sort: tt.sort}.Apply(fixture)))
		})
	}
}

func TestShopQuery_DoesNotMutateInput(t *testing.T) {
	fixture := queryFixture()
	ShopQuery{Sort: SortPriceDesc}.Apply(fixture)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(fixture))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortKey("price-asc"))
	assert.Equal(t, SortNewest, ParseSortKey(""))
	assert.Equal(t, SortNewest, ParseSortKey("bogus"))
}
