package order

import (
	"go.uber.org/zap"

	"foodgraph/internal/config"
	"foodgraph/internal/identity"
	"foodgraph/internal/infrastructure/graphdb"
	"foodgraph/internal/order/controller"
	"foodgraph/internal/order/repository"
	"foodgraph/internal/order/service"
	"foodgraph/internal/order/usecase"
)

func NewModule(store *graphdb.Store, cfg *config.Config, logger *zap.Logger) *controller.OrdersController {
	orderRepo := repository.NewGraphOrderRepository()
	aggregateSvc := service.NewAggregateService(store, orderRepo, identity.NewUUIDGenerator(), logger)
	uc := usecase.NewOrdersUseCase(aggregateSvc, logger, cfg.Order.MaxRetryAttempts)
	return controller.NewOrdersController(uc, logger)
}
