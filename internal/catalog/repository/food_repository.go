package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"foodgraph/internal/domain"
)

type GraphFoodRepository struct{}

func NewGraphFoodRepository() *GraphFoodRepository {
	return &GraphFoodRepository{}
}

func (r *GraphFoodRepository) Create(ctx context.Context, tx neo4j.ManagedTransaction, food domain.Food) error {
	result, err := tx.Run(ctx, `
		CREATE (f:Food {id: $id, name: $name, price: $price,
			description: $description, imageUri: $imageUri, category: $category})
		RETURN f.id AS id`,
		foodParams(food))
	if err != nil {
		return fmt.Errorf("creating food: %w", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("consuming food creation result: %w", err)
	}
	return nil
}

// FindAll returns every food along with the store-internal element id of
// its node, a legacy secondary field list responses still carry.
func (r *GraphFoodRepository) FindAll(ctx context.Context, tx neo4j.ManagedTransaction) ([]domain.FoodRecord, error) {
	result, err := tx.Run(ctx, `
		MATCH (f:Food)
		RETURN f, elementId(f) AS ref`,
		nil)
	if err != nil {
		return nil, fmt.Errorf("querying foods: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting foods: %w", err)
	}

	foods := make([]domain.FoodRecord, 0, len(records))
	for _, record := range records {
		value, _ := record.Get("f")
		node, ok := value.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected food value type %T", value)
		}
		ref, _ := record.Get("ref")
		elementID, _ := ref.(string)

		foods = append(foods, domain.FoodRecord{
			Food:      parseFood(node),
			ElementID: elementID,
		})
	}
	return foods, nil
}

// FindByID returns nil when the id resolves to no food.
func (r *GraphFoodRepository) FindByID(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*domain.Food, error) {
	result, err := tx.Run(ctx, `
		MATCH (f:Food {id: $id})
		RETURN f`,
		map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("querying food by id: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting food by id: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	value, _ := records[0].Get("f")
	node, ok := value.(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected food value type %T", value)
	}
	food := parseFood(node)
	return &food, nil
}

// Update overwrites every property from the already-merged food. Returns
// false when the id resolves to no node.
func (r *GraphFoodRepository) Update(ctx context.Context, tx neo4j.ManagedTransaction, food domain.Food) (bool, error) {
	result, err := tx.Run(ctx, `
		MATCH (f:Food {id: $id})
		SET f.name = $name,
		    f.price = $price,
		    f.description = $description,
		    f.imageUri = $imageUri,
		    f.category = $category
		RETURN f.id AS id`,
		foodParams(food))
	if err != nil {
		return false, fmt.Errorf("updating food: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return false, fmt.Errorf("collecting food update result: %w", err)
	}
	return len(records) > 0, nil
}

// Delete detach-deletes the food node. Incident CONTAINS edges go with it,
// so historical orders lose those line items on later traversals.
func (r *GraphFoodRepository) Delete(ctx context.Context, tx neo4j.ManagedTransaction, id string) (bool, error) {
	result, err := tx.Run(ctx, `
		MATCH (f:Food {id: $id})
		DETACH DELETE f
		RETURN count(f) AS removed`,
		map[string]any{"id": id})
	if err != nil {
		return false, fmt.Errorf("deleting food: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("collecting food delete result: %w", err)
	}

	removed, _ := record.Get("removed")
	count, ok := removed.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected removed count type %T", removed)
	}
	return count > 0, nil
}

func foodParams(food domain.Food) map[string]any {
	return map[string]any{
		"id":          food.ID,
		"name":        food.Name,
		"price":       food.Price,
		"description": food.Description,
		"imageUri":    food.ImageURI,
		"category":    food.Category,
	}
}

func parseFood(node neo4j.Node) domain.Food {
	return domain.Food{
		ID:          stringProp(node.Props, "id"),
		Name:        stringProp(node.Props, "name"),
		Price:       floatProp(node.Props, "price"),
		Description: stringProp(node.Props, "description"),
		ImageURI:    stringProp(node.Props, "imageUri"),
		Category:    stringProp(node.Props, "category"),
	}
}

func stringProp(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

func floatProp(props map[string]any, key string) float64 {
	switch n := props[key].(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}
