package catalog

import (
	"context"

	"foodgraph/internal/domain"
)

type Service interface {
	CreateFood(ctx context.Context, food domain.Food) (domain.Food, error)
	ListFoods(ctx context.Context) ([]domain.FoodRecord, error)
	UpdateFood(ctx context.Context, id string, patch domain.FoodPatch) (domain.Food, error)
	DeleteFood(ctx context.Context, id string) error
}
