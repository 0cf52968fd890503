package catalog

import (
	"go.uber.org/zap"

	"foodgraph/internal/catalog/repository"
	"foodgraph/internal/catalog/service"
	"foodgraph/internal/config"
	"foodgraph/internal/identity"
	"foodgraph/internal/infrastructure/graphdb"
)

func NewModule(store *graphdb.Store, cache service.Cache, cfg *config.Config, logger *zap.Logger) *Controller {
	foods := repository.NewGraphFoodRepository()
	svc := service.NewCatalogService(store, foods, cache, cfg.Cache.FoodListTTL, identity.NewUUIDGenerator(), logger)
	return NewController(svc, logger)
}
