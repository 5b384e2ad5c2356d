package domain

import "time"

// Product represents a product in the catalog
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Featured    bool      `json:"featured"`
	Inventory   int       `json:"inventory"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductInput carries the mutable product fields for create and update
// operations. ID is only meaningful on update.
type ProductInput struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Featured    bool    `json:"featured"`
	Inventory   int     `json:"inventory"`
}
