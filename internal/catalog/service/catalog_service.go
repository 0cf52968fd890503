package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"foodgraph/internal/domain"
	apperrors "foodgraph/internal/errors"
	"foodgraph/internal/identity"
	"foodgraph/internal/infrastructure/graphdb"
)

const foodListCacheKey = "catalog:foods"

type Graph interface {
	ExecuteWrite(ctx context.Context, work graphdb.TxWork) (any, error)
	ExecuteRead(ctx context.Context, work graphdb.TxWork) (any, error)
}

type FoodRepository interface {
	Create(ctx context.Context, tx neo4j.ManagedTransaction, food domain.Food) error
	FindAll(ctx context.Context, tx neo4j.ManagedTransaction) ([]domain.FoodRecord, error)
	FindByID(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*domain.Food, error)
	Update(ctx context.Context, tx neo4j.ManagedTransaction, food domain.Food) (bool, error)
	Delete(ctx context.Context, tx neo4j.ManagedTransaction, id string) (bool, error)
}

// Cache is best-effort: every failure degrades to the store, never to the
// caller.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

type CatalogService struct {
	graph    Graph
	foods    FoodRepository
	cache    Cache
	cacheTTL time.Duration
	ids      identity.Generator
	logger   *zap.Logger
}

func NewCatalogService(graph Graph, foods FoodRepository, cache Cache, cacheTTL time.Duration, ids identity.Generator, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		graph:    graph,
		foods:    foods,
		cache:    cache,
		cacheTTL: cacheTTL,
		ids:      ids,
		logger:   logger,
	}
}

// CreateFood assigns a fresh business id and persists the food. The id is
// never chosen by the store.
func (s *CatalogService) CreateFood(ctx context.Context, food domain.Food) (domain.Food, error) {
	if err := validateFood(food); err != nil {
		return domain.Food{}, err
	}

	food.ID = s.ids.NewID()
	_, err := s.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error) {
		return nil, s.foods.Create(ctx, tx, food)
	})
	if err != nil {
		return domain.Food{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info("food created", zap.String("foodId", food.ID), zap.String("name", food.Name))
	return food, nil
}

// ListFoods serves from the cache when it can, reads through to the store
// otherwise.
func (s *CatalogService) ListFoods(ctx context.Context) ([]domain.FoodRecord, error) {
	if cached, err := s.cache.Get(ctx, foodListCacheKey); err == nil {
		var foods []domain.FoodRecord
		if err := json.Unmarshal([]byte(cached), &foods); err == nil {
			return foods, nil
		}
		s.invalidateListCache(ctx)
	}

	result, err := s.graph.ExecuteRead(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error) {
		return s.foods.FindAll(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	foods, ok := result.([]domain.FoodRecord)
	if !ok {
		return nil, apperrors.NewInternalError(fmt.Sprintf("unexpected food list result type %T", result), nil)
	}

	if payload, err := json.Marshal(foods); err == nil {
		if err := s.cache.Set(ctx, foodListCacheKey, string(payload), s.cacheTTL); err != nil {
			s.logger.Debug("food list cache write failed", zap.Error(err))
		}
	}
	return foods, nil
}

// UpdateFood reads the current node, merges the patch and writes the result
// back, all inside one transaction. Absent patch fields keep their stored
// values.
func (s *CatalogService) UpdateFood(ctx context.Context, id string, patch domain.FoodPatch) (domain.Food, error) {
	if id == "" {
		return domain.Food{}, apperrors.NewValidationError("id is required", apperrors.ValidationDetail{
			Field:   "id",
			Message: "food id must not be empty",
		})
	}
	if patch.Empty() {
		return domain.Food{}, apperrors.NewValidationError("no fields to update", apperrors.ValidationDetail{
			Field:   "body",
			Message: "at least one field must be supplied",
		})
	}
	if patch.Price != nil && *patch.Price < 0 {
		return domain.Food{}, apperrors.NewValidationError("price must be non-negative", apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
	}

	result, err := s.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error) {
		current, err := s.foods.FindByID(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("food %s not found", id))
		}

		merged := patch.Apply(*current)
		updated, err := s.foods.Update(ctx, tx, merged)
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("food %s not found", id))
		}
		return merged, nil
	})
	if err != nil {
		return domain.Food{}, err
	}

	merged, ok := result.(domain.Food)
	if !ok {
		return domain.Food{}, apperrors.NewInternalError(fmt.Sprintf("unexpected update result type %T", result), nil)
	}

	s.invalidateListCache(ctx)
	s.logger.Info("food updated", zap.String("foodId", id))
	return merged, nil
}

// DeleteFood detach-deletes the node; CONTAINS edges referencing it are
// removed along with it.
func (s *CatalogService) DeleteFood(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("id is required", apperrors.ValidationDetail{
			Field:   "id",
			Message: "food id must not be empty",
		})
	}

	result, err := s.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error) {
		return s.foods.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	if deleted, _ := result.(bool); !deleted {
		return apperrors.NewNotFoundError(fmt.Sprintf("food %s not found", id))
	}

	s.invalidateListCache(ctx)
	s.logger.Info("food deleted", zap.String("foodId", id))
	return nil
}

func (s *CatalogService) invalidateListCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, foodListCacheKey); err != nil {
		s.logger.Debug("food list cache invalidation failed", zap.Error(err))
	}
}

func validateFood(food domain.Food) error {
	var details []apperrors.ValidationDetail
	if food.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}
	if food.Price < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
