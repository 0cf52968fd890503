package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrder_Creation(t *testing.T) {
	createdAt := time.Now()

	order := Order{
		ID:        "cd6a3e61-41e5-4d91-89e9-2f11fbd1c4fb",
		Status:    OrderStatusPending,
		CreatedAt: createdAt,
	}

	assert.Equal(t, "cd6a3e61-41e5-4d91-89e9-2f11fbd1c4fb", order.ID)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, createdAt, order.CreatedAt)
}

func TestOrder_StatusConstants(t *testing.T) {
	assert.Equal(t, "pending", OrderStatusPending)
	assert.Equal(t, "success", OrderStatusSuccess)
}

func TestOrderAggregate_Total(t *testing.T) {
	aggregate := OrderAggregate{
		Order: Order{ID: "o1", Status: OrderStatusPending},
		Purchaser: Purchaser{
			Email: "alice@x.com",
			Name:  "Alice",
			Role:  "user",
		},
		LineItems: []LineItem{
			{FoodID: "f1", Name: "Burger", Price: 5.0, Quantity: 2},
			{FoodID: "f2", Name: "Soda", Price: 2.0, Quantity: 1},
		},
	}

	assert.Equal(t, 12.0, aggregate.Total())
}

func TestOrderAggregate_Total_NoLineItems(t *testing.T) {
	aggregate := OrderAggregate{
		Order:     Order{ID: "o1", Status: OrderStatusPending},
		LineItems: []LineItem{},
	}

	assert.Equal(t, 0.0, aggregate.Total())
}
