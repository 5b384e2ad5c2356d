package domain

// CartItem pairs a product snapshot with a quantity. The snapshot is a
// value copy taken at add time; later catalog edits do not reach into it.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity for this line item.
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}
