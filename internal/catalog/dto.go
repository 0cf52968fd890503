package catalog

type CreateFoodRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ImageURI    string  `json:"imageUri"`
}

// UpdateFoodRequest is a partial update: absent fields keep their stored
// values, which is why everything is a pointer.
type UpdateFoodRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	ImageURI    *string  `json:"imageUri"`
}

type FoodView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ImageURI    string  `json:"imageUri"`
	// ElementID is the store-internal node reference, exposed on lists for
	// legacy compatibility only. Not stable, not authoritative.
	ElementID string `json:"elementId,omitempty"`
}
