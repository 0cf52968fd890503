package domain

// Food is a catalog entry. ID is a UUID assigned by the identity generator
// at creation time, never by the store.
type Food struct {
	ID          string
	Name        string
	Price       float64
	Description string
	ImageURI    string
	Category    string
}

// FoodRecord pairs a Food with the store-internal element id of its node.
// The element id is exposed on list responses for legacy compatibility only
// and is not stable across store restarts; callers must not depend on it.
type FoodRecord struct {
	Food
	ElementID string
}

// FoodPatch carries the optional fields of a partial catalog update. A nil
// field means "keep the current value".
type FoodPatch struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
	ImageURI    *string
}

// Apply merges the patch over the current food, field by field.
func (p FoodPatch) Apply(current Food) Food {
	merged := current
	if p.Name != nil {
		merged.Name = *p.Name
	}
	if p.Price != nil {
		merged.Price = *p.Price
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.Category != nil {
		merged.Category = *p.Category
	}
	if p.ImageURI != nil {
		merged.ImageURI = *p.ImageURI
	}
	return merged
}

// Empty reports whether the patch carries no fields at all.
func (p FoodPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil &&
		p.Category == nil && p.ImageURI == nil
}
