package dto

type DeleteOrdersRequest struct {
	IDs []string `json:"ids"`
}

// DeleteOrdersResponse reports the per-batch outcome. Missing ids are
// skipped, not errored; they appear here for observability.
type DeleteOrdersResponse struct {
	Requested int      `json:"requested"`
	Deleted   int      `json:"deleted"`
	Missing   []string `json:"missing"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}
