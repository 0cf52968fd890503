package auth

import (
	"go.uber.org/zap"

	"foodgraph/internal/auth/repository"
	"foodgraph/internal/auth/service"
	"foodgraph/internal/infrastructure/graphdb"
)

func NewModule(store *graphdb.Store, tokens service.TokenService, logger *zap.Logger) *Controller {
	users := repository.NewGraphUserRepository()
	svc := service.NewAuthService(store, users, tokens, logger)
	return NewController(svc, logger)
}
