package domain

import "github.com/shopspring/decimal"

// CartItem is a cart line item: a product reference plus quantity and a
// title/price/image snapshot taken at add-time. The snapshot is deliberate:
// a later price change on the live product does not reprice items already
// in a cart.
type CartItem struct {
	ProductID string  `bson:"product_id" json:"id"`
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image" json:"image"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// CartState is an ordered sequence of line items, at most one per product id.
// Items keep insertion order; new items append to the end.
type CartState struct {
	Items []CartItem `json:"items"`
}

// ItemCount is the sum of quantities across all line items.
func (s CartState) ItemCount() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal is sum(price * quantity) rounded to 2 decimal places, half-up.
// The same computation backs both the displayed subtotal and the charged
// order total, so the two can never drift apart.
func (s CartState) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		price := decimal.NewFromFloat(item.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// Clone returns a deep copy so callers can hand out state without aliasing
// the backing slice.
func (s CartState) Clone() CartState {
	if s.Items == nil {
		return CartState{}
	}
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	return CartState{Items: items}
}
