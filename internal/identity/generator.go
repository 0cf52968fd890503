package identity

import "github.com/google/uuid"

// Generator produces business keys for Food and Order entities. Keys are
// independent of the store's internal node ids and are never reused.
type Generator interface {
	NewID() string
}

type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}
