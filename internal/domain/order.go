package domain

import "time"

const (
	OrderStatusPending = "pending"
	OrderStatusSuccess = "success"
)

// Order is the aggregate header. Status is the only field mutated after
// creation; the enum is open-ended at the edge, so unrecognized values pass
// through unchanged.
type Order struct {
	ID        string
	Status    string
	CreatedAt time.Time
}

// OrderItem is a requested line item: which food, how many.
type OrderItem struct {
	FoodID   string
	Quantity int
}

// LineItem is a line item as read back from the graph. Name and price come
// live from the current Food node at query time, not from an order-time
// snapshot.
type LineItem struct {
	FoodID   string  `json:"foodId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderAggregate is the full reconstructed aggregate: the order, the user
// that placed it and every contained food with its quantity.
type OrderAggregate struct {
	Order
	Purchaser Purchaser
	LineItems []LineItem
}

// Total sums price*quantity over all line items.
func (a OrderAggregate) Total() float64 {
	total := 0.0
	for _, item := range a.LineItems {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
