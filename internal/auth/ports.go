package auth

import (
	"context"

	"foodgraph/internal/domain"
)

type Service interface {
	Register(ctx context.Context, name, email, password string, role domain.UserRole) (domain.Purchaser, error)
	Login(ctx context.Context, email, password string) (string, error)
}
