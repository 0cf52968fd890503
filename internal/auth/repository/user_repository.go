package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"foodgraph/internal/domain"
)

type GraphUserRepository struct{}

func NewGraphUserRepository() *GraphUserRepository {
	return &GraphUserRepository{}
}

// FindByEmail returns nil when no user carries the email.
func (r *GraphUserRepository) FindByEmail(ctx context.Context, tx neo4j.ManagedTransaction, email string) (*domain.User, error) {
	result, err := tx.Run(ctx, `
		MATCH (u:User {email: $email})
		RETURN u`,
		map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting user result: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	value, _ := records[0].Get("u")
	node, ok := value.(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected user value type %T", value)
	}

	user := domain.User{
		Email:        stringProp(node.Props, "email"),
		Name:         stringProp(node.Props, "name"),
		PasswordHash: stringProp(node.Props, "password"),
		Role:         domain.UserRole(stringProp(node.Props, "role")),
	}
	return &user, nil
}

func (r *GraphUserRepository) Create(ctx context.Context, tx neo4j.ManagedTransaction, user domain.User) error {
	result, err := tx.Run(ctx, `
		CREATE (u:User {email: $email, name: $name, password: $password, role: $role})
		RETURN u.email AS email`,
		map[string]any{
			"email":    user.Email,
			"name":     user.Name,
			"password": user.PasswordHash,
			"role":     string(user.Role),
		})
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("consuming user creation result: %w", err)
	}
	return nil
}

func stringProp(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}
