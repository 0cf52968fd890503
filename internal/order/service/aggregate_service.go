package service

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"foodgraph/internal/domain"
	apperrors "foodgraph/internal/errors"
	"foodgraph/internal/identity"
	"foodgraph/internal/infrastructure/graphdb"
)

// Graph is the slice of the store adapter this service needs: scoped
// transactional execution with the timeout enforced at the adapter boundary.
type Graph interface {
	ExecuteWrite(ctx context.Context, work graphdb.TxWork) (any, error)
	ExecuteRead(ctx context.Context, work graphdb.TxWork) (any, error)
}

type OrderRepository interface {
	CreateHeader(ctx context.Context, tx neo4j.ManagedTransaction, purchaserKey string, order domain.Order) (bool, error)
	AttachItems(ctx context.Context, tx neo4j.ManagedTransaction, orderID string, items []domain.OrderItem) (int, error)
	FindAll(ctx context.Context, tx neo4j.ManagedTransaction) ([]domain.OrderAggregate, error)
	FindByID(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*domain.OrderAggregate, error)
	UpdateStatus(ctx context.Context, tx neo4j.ManagedTransaction, id string, status string) (bool, error)
	DeleteByID(ctx context.Context, tx neo4j.ManagedTransaction, id string) (bool, error)
}

// DeleteResult is the per-batch outcome of a best-effort delete.
type DeleteResult struct {
	Requested int
	Deleted   int
	Missing   []string
}

// AggregateService builds and reconstructs order aggregates. CreateOrder is
// the one hard consistency point of the system: the order node, its PLACED
// edge and every CONTAINS edge commit or roll back as a unit.
type AggregateService struct {
	graph  Graph
	orders OrderRepository
	ids    identity.Generator
	logger *zap.Logger
}

func NewAggregateService(graph Graph, orders OrderRepository, ids identity.Generator, logger *zap.Logger) *AggregateService {
	return &AggregateService{
		graph:  graph,
		orders: orders,
		ids:    ids,
		logger: logger,
	}
}

// CreateOrder allocates a new order id, writes the whole aggregate inside a
// single write transaction and returns the id. A purchaser or food that does
// not resolve aborts the transaction; no partial aggregate is ever left in
// the store.
func (s *AggregateService) CreateOrder(ctx context.Context, purchaserKey string, items []domain.OrderItem) (string, error) {
	order := domain.Order{
		ID:        s.ids.NewID(),
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error) {
		created, err := s.orders.CreateHeader(ctx, tx, purchaserKey, order)
		if err != nil {
			return nil, err
		}
		if !created {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", purchaserKey))
		}

		linked, err := s.orders.AttachItems(ctx, tx, order.ID, items)
		if err != nil {
			return nil, err
		}
		if linked != len(items) {
			// Returning an error rolls back the header and every edge
			// created so far.
			return nil, apperrors.NewNotFoundError("one or more foods do not exist")
		}
		return nil, nil
	})
	if err != nil {
		s.logger.Warn("order creation aborted",
			zap.String("orderId", order.ID),
			zap.String("purchaser", purchaserKey),
			zap.Error(err))
		return "", err
	}

	s.logger.Info("order created",
		zap.String("orderId", order.ID),
		zap.String("purchaser", purchaserKey),
		zap.Int("itemCount", len(items)))
	return order.ID, nil
}

// ListOrders reconstructs every aggregate. Ordering is store-determined and
// not part of the contract.
func (s *AggregateService) ListOrders(ctx context.Context) ([]domain.OrderAggregate, error) {
	result, err := s.graph.ExecuteRead(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error) {
		return s.orders.FindAll(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	aggregates, ok := result.([]domain.OrderAggregate)
	if !ok {
		return nil, apperrors.NewInternalError(fmt.Sprintf("unexpected list result type %T", result), nil)
	}
	return aggregates, nil
}

// UpdateStatus mutates the status property and returns the refreshed
// aggregate, both inside the same transaction.
func (s *AggregateService) UpdateStatus(ctx context.Context, orderID string, status string) (*domain.OrderAggregate, error) {
	result, err := s.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error) {
		updated, err := s.orders.UpdateStatus(ctx, tx, orderID, status)
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("order %s not found", orderID))
		}
		return s.orders.FindByID(ctx, tx, orderID)
	})
	if err != nil {
		return nil, err
	}

	aggregate, ok := result.(*domain.OrderAggregate)
	if !ok || aggregate == nil {
		return nil, apperrors.NewInternalError("order vanished during status update", nil)
	}

	s.logger.Info("order status updated",
		zap.String("orderId", orderID),
		zap.String("status", status))
	return aggregate, nil
}

// DeleteOrders detach-deletes each order in its own short transaction. A
// missing id is logged and skipped; the batch itself still succeeds.
func (s *AggregateService) DeleteOrders(ctx context.Context, ids []string) (DeleteResult, error) {
	result := DeleteResult{Requested: len(ids)}

	for _, id := range ids {
		deleted, err := s.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error) {
			return s.orders.DeleteByID(ctx, tx, id)
		})
		if err != nil {
			return result, err
		}

		if ok, _ := deleted.(bool); ok {
			result.Deleted++
		} else {
			s.logger.Warn("order not found, skipping delete", zap.String("orderId", id))
			result.Missing = append(result.Missing, id)
		}
	}

	return result, nil
}
