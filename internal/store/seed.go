package store

import (
	"time"

	"giftoria/internal/domain"
)

// SampleProducts returns the fixed sample set used to initialize an empty
// catalog on first run.
func SampleProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Handcrafted Wooden Vase",
			Description: "A beautifully crafted wooden vase made from sustainable materials. Perfect for any home decor.",
			Price:       89.99,
			Category:    "Home Decor",
			ImageURL:    "https://images.unsplash.com/photo-1618160702438-9b02ab6515c9",
			Featured:    true,
			Inventory:   25,
			CreatedAt:   time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			Name:        "Luxury Scented Candle Set",
			Description: "Set of 3 luxury scented candles with notes of amber, vanilla, and sandalwood.",
			Price:       54.99,
			Category:    "Home Fragrance",
			ImageURL:    "https://images.unsplash.com/photo-1721322800607-8c38375eef04",
			Featured:    true,
			Inventory:   40,
			CreatedAt:   time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "3",
			Name:        "Artisan Ceramic Mug",
			Description: "Handmade ceramic mug with a minimalist design and comfortable handle.",
			Price:       34.99,
			Category:    "Kitchen & Dining",
			ImageURL:    "https://images.unsplash.com/photo-1472396961693-142e6e269027",
			Featured:    false,
			Inventory:   15,
			CreatedAt:   time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "4",
			Name:        "Premium Tea Collection Box",
			Description: "Curated collection of premium loose leaf teas from around the world.",
			Price:       49.99,
			Category:    "Food & Beverage",
			ImageURL:    "https://images.unsplash.com/photo-1466721591366-2d5fba72006d",
			Featured:    true,
			Inventory:   30,
			CreatedAt:   time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC),
		},
	}
}
