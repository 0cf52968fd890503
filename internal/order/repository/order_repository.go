package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"foodgraph/internal/domain"
)

// GraphOrderRepository runs order Cypher against a caller-provided managed
// transaction, so a whole aggregate write shares one commit point.
type GraphOrderRepository struct{}

func NewGraphOrderRepository() *GraphOrderRepository {
	return &GraphOrderRepository{}
}

// CreateHeader creates the Order node and its PLACED edge in one statement.
// The purchaser MATCH comes first: when the user does not exist the
// statement produces no rows and nothing is created. Returns false in that
// case.
func (r *GraphOrderRepository) CreateHeader(ctx context.Context, tx neo4j.ManagedTransaction, purchaserKey string, order domain.Order) (bool, error) {
	result, err := tx.Run(ctx, `
		MATCH (u:User {email: $email})
		CREATE (o:Order {id: $orderId, status: $status, createdAt: $createdAt})
		CREATE (u)-[:PLACED]->(o)
		RETURN o.id AS id`,
		map[string]any{
			"email":     purchaserKey,
			"orderId":   order.ID,
			"status":    order.Status,
			"createdAt": order.CreatedAt,
		})
	if err != nil {
		return false, fmt.Errorf("creating order header: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return false, fmt.Errorf("collecting order header result: %w", err)
	}
	return len(records) > 0, nil
}

// AttachItems creates one CONTAINS edge per item and returns how many were
// linked. A foodId that matches no Food node simply drops out of the UNWIND,
// so the caller compares the returned count against len(items) to detect
// missing foods and abort the transaction.
func (r *GraphOrderRepository) AttachItems(ctx context.Context, tx neo4j.ManagedTransaction, orderID string, items []domain.OrderItem) (int, error) {
	params := make([]map[string]any, 0, len(items))
	for _, item := range items {
		params = append(params, map[string]any{
			"foodId":   item.FoodID,
			"quantity": item.Quantity,
		})
	}

	result, err := tx.Run(ctx, `
		MATCH (o:Order {id: $orderId})
		UNWIND $items AS item
		MATCH (f:Food {id: item.foodId})
		CREATE (o)-[:CONTAINS {quantity: item.quantity}]->(f)
		RETURN count(f) AS linked`,
		map[string]any{
			"orderId": orderID,
			"items":   params,
		})
	if err != nil {
		return 0, fmt.Errorf("attaching order items: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return 0, fmt.Errorf("collecting attach result: %w", err)
	}

	linked, _ := record.Get("linked")
	count, ok := linked.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected linked count type %T", linked)
	}
	return int(count), nil
}

// FindAll reconstructs every aggregate: order, purchaser and contained
// foods with live name and price. Orders without line items come back with
// an empty collection, not an error.
func (r *GraphOrderRepository) FindAll(ctx context.Context, tx neo4j.ManagedTransaction) ([]domain.OrderAggregate, error) {
	result, err := tx.Run(ctx, `
		MATCH (o:Order)<-[:PLACED]-(u:User)
		OPTIONAL MATCH (o)-[c:CONTAINS]->(f:Food)
		RETURN o, u, collect(
			CASE WHEN f IS NOT NULL
			THEN {foodId: f.id, name: f.name, price: f.price, quantity: c.quantity}
			ELSE NULL END
		) AS items`,
		nil)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting orders: %w", err)
	}

	aggregates := make([]domain.OrderAggregate, 0, len(records))
	for _, record := range records {
		aggregate, err := parseAggregate(record)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}
	return aggregates, nil
}

// FindByID reconstructs a single aggregate, or nil when the id resolves to
// no order.
func (r *GraphOrderRepository) FindByID(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*domain.OrderAggregate, error) {
	result, err := tx.Run(ctx, `
		MATCH (o:Order {id: $orderId})<-[:PLACED]-(u:User)
		OPTIONAL MATCH (o)-[c:CONTAINS]->(f:Food)
		RETURN o, u, collect(
			CASE WHEN f IS NOT NULL
			THEN {foodId: f.id, name: f.name, price: f.price, quantity: c.quantity}
			ELSE NULL END
		) AS items`,
		map[string]any{"orderId": id})
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting order by id: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	aggregate, err := parseAggregate(records[0])
	if err != nil {
		return nil, err
	}
	return &aggregate, nil
}

// UpdateStatus mutates the status property in place. Returns false when the
// id resolves to no order.
func (r *GraphOrderRepository) UpdateStatus(ctx context.Context, tx neo4j.ManagedTransaction, id string, status string) (bool, error) {
	result, err := tx.Run(ctx, `
		MATCH (o:Order {id: $orderId})
		SET o.status = $status
		RETURN o.id AS id`,
		map[string]any{"orderId": id, "status": status})
	if err != nil {
		return false, fmt.Errorf("updating order status: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return false, fmt.Errorf("collecting status update result: %w", err)
	}
	return len(records) > 0, nil
}

// DeleteByID detach-deletes the order node and every edge incident to it.
// Linked User and Food nodes are untouched. Returns false when no order
// matched.
func (r *GraphOrderRepository) DeleteByID(ctx context.Context, tx neo4j.ManagedTransaction, id string) (bool, error) {
	result, err := tx.Run(ctx, `
		MATCH (o:Order {id: $orderId})
		DETACH DELETE o
		RETURN count(o) AS removed`,
		map[string]any{"orderId": id})
	if err != nil {
		return false, fmt.Errorf("deleting order: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("collecting delete result: %w", err)
	}

	removed, _ := record.Get("removed")
	count, ok := removed.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected removed count type %T", removed)
	}
	return count > 0, nil
}

func parseAggregate(record *neo4j.Record) (domain.OrderAggregate, error) {
	orderValue, ok := record.Get("o")
	if !ok {
		return domain.OrderAggregate{}, fmt.Errorf("order node missing from record")
	}
	orderNode, ok := orderValue.(neo4j.Node)
	if !ok {
		return domain.OrderAggregate{}, fmt.Errorf("unexpected order value type %T", orderValue)
	}

	userValue, ok := record.Get("u")
	if !ok {
		return domain.OrderAggregate{}, fmt.Errorf("user node missing from record")
	}
	userNode, ok := userValue.(neo4j.Node)
	if !ok {
		return domain.OrderAggregate{}, fmt.Errorf("unexpected user value type %T", userValue)
	}

	aggregate := domain.OrderAggregate{
		Order: domain.Order{
			ID:        stringProp(orderNode.Props, "id"),
			Status:    stringProp(orderNode.Props, "status"),
			CreatedAt: timeProp(orderNode.Props, "createdAt"),
		},
		Purchaser: domain.Purchaser{
			Email: stringProp(userNode.Props, "email"),
			Name:  stringProp(userNode.Props, "name"),
			Role:  stringProp(userNode.Props, "role"),
		},
		LineItems: []domain.LineItem{},
	}

	itemsValue, _ := record.Get("items")
	itemsList, ok := itemsValue.([]any)
	if !ok {
		return aggregate, nil
	}
	for _, entry := range itemsList {
		item, ok := entry.(map[string]any)
		if !ok {
			// NULL entries come from orders without CONTAINS edges.
			continue
		}
		aggregate.LineItems = append(aggregate.LineItems, domain.LineItem{
			FoodID:   stringValue(item["foodId"]),
			Name:     stringValue(item["name"]),
			Price:    floatValue(item["price"]),
			Quantity: intValue(item["quantity"]),
		})
	}

	return aggregate, nil
}

func stringProp(props map[string]any, key string) string {
	return stringValue(props[key])
}

func timeProp(props map[string]any, key string) time.Time {
	if t, ok := props[key].(time.Time); ok {
		return t
	}
	return time.Time{}
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func floatValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func intValue(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
