package dto

import (
	"time"

	"foodgraph/internal/domain"
)

type OrderView struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	Purchaser PurchaserView  `json:"purchaser"`
	LineItems []LineItemView `json:"lineItems"`
}

type PurchaserView struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type LineItemView struct {
	FoodID   string  `json:"foodId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// NewOrderView maps a reconstructed aggregate to its wire shape. LineItems
// is always non-nil so degenerate orders serialize as [] rather than null.
func NewOrderView(aggregate domain.OrderAggregate) OrderView {
	lineItems := make([]LineItemView, 0, len(aggregate.LineItems))
	for _, item := range aggregate.LineItems {
		lineItems = append(lineItems, LineItemView{
			FoodID:   item.FoodID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	return OrderView{
		ID:        aggregate.ID,
		Status:    aggregate.Status,
		CreatedAt: aggregate.CreatedAt,
		Purchaser: PurchaserView{
			Email: aggregate.Purchaser.Email,
			Name:  aggregate.Purchaser.Name,
			Role:  aggregate.Purchaser.Role,
		},
		LineItems: lineItems,
	}
}
