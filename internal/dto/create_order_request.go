package dto

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	FoodID   string `json:"foodId"`
	Quantity int    `json:"quantity"`
}
