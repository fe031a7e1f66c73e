package domain

// CartItem is one line in the cart. The product display fields are a
// snapshot taken when the item was added and are not kept in sync with
// later catalog changes.
type CartItem struct {
	ID           string  `json:"id"`
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	MainPhotoURL string  `json:"main_photo_url"`
	CategoryName string  `json:"category_name"`
	// Stock is the available stock at add time, used only as a local
	// upper bound for quantity edits.
	Stock int `json:"stock"`
}

// Subtotal returns the line price for the current quantity.
func (i CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Cart is the ordered sequence of line items. Insertion order is
// significant and is preserved through persistence.
type Cart []CartItem

// Total sums unit price times quantity over all line items.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c {
		total += item.Subtotal()
	}
	return total
}

// Find returns the line item with the given id, if present.
func (c Cart) Find(itemID string) (CartItem, bool) {
	for _, item := range c {
		if item.ID == itemID {
			return item, true
		}
	}
	return CartItem{}, false
}
