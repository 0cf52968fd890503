package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"foodgraph/internal/domain"
	apperrors "foodgraph/internal/errors"
	"foodgraph/internal/graphtest"
	"foodgraph/internal/identity"
	"foodgraph/internal/infrastructure/cache"
)

type mockFoodRepository struct {
	CreateFunc   func(ctx context.Context, tx neo4j.ManagedTransaction, food domain.Food) error
	FindAllFunc  func(ctx context.Context, tx neo4j.ManagedTransaction) ([]domain.FoodRecord, error)
	FindByIDFunc func(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*domain.Food, error)
	UpdateFunc   func(ctx context.Context, tx neo4j.ManagedTransaction, food domain.Food) (bool, error)
	DeleteFunc   func(ctx context.Context, tx neo4j.ManagedTransaction, id string) (bool, error)

	findAllCalls int
}

func (m *mockFoodRepository) Create(ctx context.Context, tx neo4j.ManagedTransaction, food domain.Food) error {
	return m.CreateFunc(ctx, tx, food)
}

func (m *mockFoodRepository) FindAll(ctx context.Context, tx neo4j.ManagedTransaction) ([]domain.FoodRecord, error) {
	m.findAllCalls++
	return m.FindAllFunc(ctx, tx)
}

func (m *mockFoodRepository) FindByID(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*domain.Food, error) {
	return m.FindByIDFunc(ctx, tx, id)
}

func (m *mockFoodRepository) Update(ctx context.Context, tx neo4j.ManagedTransaction, food domain.Food) (bool, error) {
	return m.UpdateFunc(ctx, tx, food)
}

func (m *mockFoodRepository) Delete(ctx context.Context, tx neo4j.ManagedTransaction, id string) (bool, error) {
	return m.DeleteFunc(ctx, tx, id)
}

type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	return "", cache.ErrCacheMiss
}

func (c *fakeCache) Set(ctx context.Context, key string, value string, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func newTestCatalogService(graph Graph, repo FoodRepository, c Cache) *CatalogService {
	return NewCatalogService(graph, repo, c, time.Minute, identity.NewUUIDGenerator(), zap.NewNop())
}

func TestCreateFood_AssignsBusinessID(t *testing.T) {
	graph := &graphtest.FakeGraph{}
	var created domain.Food
	repo := &mockFoodRepository{
		CreateFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, food domain.Food) error {
			created = food
			return nil
		},
	}

	svc := newTestCatalogService(graph, repo, newFakeCache())
	food, err := svc.CreateFood(context.Background(), domain.Food{Name: "Burger", Price: 5})

	require.NoError(t, err)
	assert.NotEmpty(t, food.ID)
	assert.Equal(t, created.ID, food.ID)
	assert.Equal(t, 1, graph.Commits)
}

func TestCreateFood_RejectsNegativePrice(t *testing.T) {
	graph := &graphtest.FakeGraph{}
	svc := newTestCatalogService(graph, &mockFoodRepository{}, newFakeCache())

	_, err := svc.CreateFood(context.Background(), domain.Food{Name: "Burger", Price: -1})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Zero(t, graph.Commits)
}

func TestCreateFood_InvalidatesListCache(t *testing.T) {
	fc := newFakeCache()
	fc.entries["catalog:foods"] = "[]"
	repo := &mockFoodRepository{
		CreateFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, food domain.Food) error {
			return nil
		},
	}

	svc := newTestCatalogService(&graphtest.FakeGraph{}, repo, fc)
	_, err := svc.CreateFood(context.Background(), domain.Food{Name: "Burger", Price: 5})

	require.NoError(t, err)
	_, cached := fc.entries["catalog:foods"]
	assert.False(t, cached)
}

func TestListFoods_CacheMissReadsStoreAndPopulatesCache(t *testing.T) {
	fc := newFakeCache()
	repo := &mockFoodRepository{
		FindAllFunc: func(ctx context.Context, tx neo4j.ManagedTransaction) ([]domain.FoodRecord, error) {
			return []domain.FoodRecord{
				{Food: domain.Food{ID: "f1", Name: "Burger", Price: 5}, ElementID: "4:abc:0"},
			}, nil
		},
	}

	svc := newTestCatalogService(&graphtest.FakeGraph{}, repo, fc)
	foods, err := svc.ListFoods(context.Background())

	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Burger", foods[0].Name)
	assert.Contains(t, fc.entries, "catalog:foods")
}

func TestListFoods_CacheHitSkipsStore(t *testing.T) {
	fc := newFakeCache()
	repo := &mockFoodRepository{
		FindAllFunc: func(ctx context.Context, tx neo4j.ManagedTransaction) ([]domain.FoodRecord, error) {
			return []domain.FoodRecord{
				{Food: domain.Food{ID: "f1", Name: "Burger", Price: 5}},
			}, nil
		},
	}

	svc := newTestCatalogService(&graphtest.FakeGraph{}, repo, fc)

	_, err := svc.ListFoods(context.Background())
	require.NoError(t, err)
	foods, err := svc.ListFoods(context.Background())
	require.NoError(t, err)

	assert.Len(t, foods, 1)
	assert.Equal(t, 1, repo.findAllCalls)
}

func TestUpdateFood_MergesPatchOverCurrent(t *testing.T) {
	var written domain.Food
	repo := &mockFoodRepository{
		FindByIDFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*domain.Food, error) {
			return &domain.Food{
				ID:          id,
				Name:        "Burger",
				Price:       5,
				Description: "beef patty",
				Category:    "mains",
				ImageURI:    "http://cdn/burger.jpg",
			}, nil
		},
		UpdateFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, food domain.Food) (bool, error) {
			written = food
			return true, nil
		},
	}

	svc := newTestCatalogService(&graphtest.FakeGraph{}, repo, newFakeCache())
	merged, err := svc.UpdateFood(context.Background(), "f1", domain.FoodPatch{
		Price: floatPtr(6.5),
		Name:  strPtr("Cheeseburger"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Cheeseburger", merged.Name)
	assert.Equal(t, 6.5, merged.Price)
	assert.Equal(t, "beef patty", merged.Description)
	assert.Equal(t, "mains", merged.Category)
	assert.Equal(t, "http://cdn/burger.jpg", merged.ImageURI)
	assert.Equal(t, written, merged)
}

func TestUpdateFood_EmptyPatchRejected(t *testing.T) {
	graph := &graphtest.FakeGraph{}
	svc := newTestCatalogService(graph, &mockFoodRepository{}, newFakeCache())

	_, err := svc.UpdateFood(context.Background(), "f1", domain.FoodPatch{})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Zero(t, graph.Commits, "an empty patch must not touch the store")
}

func TestUpdateFood_NotFound(t *testing.T) {
	graph := &graphtest.FakeGraph{}
	repo := &mockFoodRepository{
		FindByIDFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*domain.Food, error) {
			return nil, nil
		},
	}

	svc := newTestCatalogService(graph, repo, newFakeCache())
	_, err := svc.UpdateFood(context.Background(), "ghost", domain.FoodPatch{Name: strPtr("x")})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, 1, graph.Rollbacks)
}

func TestDeleteFood_NotFound(t *testing.T) {
	repo := &mockFoodRepository{
		DeleteFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, id string) (bool, error) {
			return false, nil
		},
	}

	svc := newTestCatalogService(&graphtest.FakeGraph{}, repo, newFakeCache())
	err := svc.DeleteFood(context.Background(), "ghost")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestDeleteFood_InvalidatesListCache(t *testing.T) {
	fc := newFakeCache()
	fc.entries["catalog:foods"] = "[]"
	repo := &mockFoodRepository{
		DeleteFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, id string) (bool, error) {
			return true, nil
		},
	}

	svc := newTestCatalogService(&graphtest.FakeGraph{}, repo, fc)
	err := svc.DeleteFood(context.Background(), "f1")

	require.NoError(t, err)
	_, cached := fc.entries["catalog:foods"]
	assert.False(t, cached)
}

func TestListFoods_StoreErrorPropagates(t *testing.T) {
	repo := &mockFoodRepository{
		FindAllFunc: func(ctx context.Context, tx neo4j.ManagedTransaction) ([]domain.FoodRecord, error) {
			return nil, errors.New("boom")
		},
	}

	svc := newTestCatalogService(&graphtest.FakeGraph{}, repo, newFakeCache())
	_, err := svc.ListFoods(context.Background())

	assert.Error(t, err)
}
