package usecase

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/zap"

	"foodgraph/internal/domain"
	"foodgraph/internal/dto"
	apperrors "foodgraph/internal/errors"
	"foodgraph/internal/order/service"
)

type AggregateService interface {
	CreateOrder(ctx context.Context, purchaserKey string, items []domain.OrderItem) (string, error)
	ListOrders(ctx context.Context) ([]domain.OrderAggregate, error)
	UpdateStatus(ctx context.Context, orderID string, status string) (*domain.OrderAggregate, error)
	DeleteOrders(ctx context.Context, ids []string) (service.DeleteResult, error)
}

type OrdersUseCase struct {
	aggregates       AggregateService
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewOrdersUseCase(aggregates AggregateService, logger *zap.Logger, maxRetryAttempts int) *OrdersUseCase {
	return &OrdersUseCase{
		aggregates:       aggregates,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

// CreateOrder validates the request fully before anything touches the
// store, then delegates to the aggregate service with transient-failure
// retry. A timed-out attempt leaves no partial writes, so re-running it is
// safe.
func (uc *OrdersUseCase) CreateOrder(ctx context.Context, purchaserKey string, items []domain.OrderItem) (string, error) {
	if purchaserKey == "" {
		return "", apperrors.NewValidationError("purchaser is required", apperrors.ValidationDetail{
			Field:   "purchaser",
			Message: "authenticated purchaser identity is missing",
		})
	}
	if err := validateItems(items); err != nil {
		return "", err
	}

	uc.logger.Info("create order started",
		zap.String("purchaser", purchaserKey),
		zap.Int("itemCount", len(items)))

	var orderID string
	err := uc.withRetry(ctx, "createOrder", func() error {
		var err error
		orderID, err = uc.aggregates.CreateOrder(ctx, purchaserKey, items)
		return err
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

func (uc *OrdersUseCase) ListOrders(ctx context.Context) ([]dto.OrderView, error) {
	var aggregates []domain.OrderAggregate
	err := uc.withRetry(ctx, "listOrders", func() error {
		var err error
		aggregates, err = uc.aggregates.ListOrders(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	views := make([]dto.OrderView, 0, len(aggregates))
	for _, aggregate := range aggregates {
		views = append(views, dto.NewOrderView(aggregate))
	}
	return views, nil
}

// UpdateStatus accepts any non-empty status value: pending and success are
// the only values the surrounding system emits, but the enum stays open at
// this edge.
func (uc *OrdersUseCase) UpdateStatus(ctx context.Context, orderID string, status string) (dto.OrderView, error) {
	var details []apperrors.ValidationDetail
	if orderID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId is required",
		})
	}
	if status == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must not be empty",
		})
	}
	if len(details) > 0 {
		return dto.OrderView{}, apperrors.NewValidationError("validation failed", details...)
	}

	// Retried like creation: the status write is an idempotent single
	// property update, so re-running it is safe.
	var aggregate *domain.OrderAggregate
	err := uc.withRetry(ctx, "updateStatus", func() error {
		var err error
		aggregate, err = uc.aggregates.UpdateStatus(ctx, orderID, status)
		return err
	})
	if err != nil {
		return dto.OrderView{}, err
	}
	return dto.NewOrderView(*aggregate), nil
}

func (uc *OrdersUseCase) DeleteOrders(ctx context.Context, ids []string) (dto.DeleteOrdersResponse, error) {
	if len(ids) == 0 {
		return dto.DeleteOrdersResponse{}, apperrors.NewValidationError("ids must not be empty", apperrors.ValidationDetail{
			Field:   "ids",
			Message: "ids must contain at least one order id",
		})
	}
	for idx, id := range ids {
		if id == "" {
			return dto.DeleteOrdersResponse{}, apperrors.NewValidationError("ids must not contain empty values", apperrors.ValidationDetail{
				Field:   "ids[" + strconv.Itoa(idx) + "]",
				Message: "order id must not be empty",
			})
		}
	}

	result, err := uc.aggregates.DeleteOrders(ctx, ids)
	if err != nil {
		return dto.DeleteOrdersResponse{}, err
	}

	return dto.DeleteOrdersResponse{
		Requested: result.Requested,
		Deleted:   result.Deleted,
		Missing:   result.Missing,
	}, nil
}

func validateItems(items []domain.OrderItem) error {
	var details []apperrors.ValidationDetail

	if len(items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	seen := make(map[string]bool, len(items))
	for idx, item := range items {
		if item.FoodID == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].foodId",
				Message: "foodId is required",
			})
		}
		if seen[item.FoodID] {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].foodId",
				Message: "foodId must not be duplicated",
			})
		}
		seen[item.FoodID] = true

		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be at least 1",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

// withRetry re-runs op on transient store failures with jittered backoff,
// up to the configured number of attempts.
func (uc *OrdersUseCase) withRetry(ctx context.Context, operation string, op func() error) error {
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	var lastErr error
	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		if _, ok := apperrors.IsUnavailableError(lastErr); !ok {
			return lastErr
		}
		if attempt == uc.maxRetryAttempts {
			break
		}

		backoff := backoffs[len(backoffs)-1]
		if attempt-1 < len(backoffs) {
			backoff = backoffs[attempt-1]
		}
		jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
		uc.logger.Warn("transient store failure, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", uc.maxRetryAttempts),
			zap.Error(lastErr))

		if ctx.Err() != nil {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(jitter):
		}
	}

	return lastErr
}
