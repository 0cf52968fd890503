package service

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"foodgraph/internal/domain"
	apperrors "foodgraph/internal/errors"
	"foodgraph/internal/infrastructure/graphdb"
)

type Graph interface {
	ExecuteWrite(ctx context.Context, work graphdb.TxWork) (any, error)
	ExecuteRead(ctx context.Context, work graphdb.TxWork) (any, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, tx neo4j.ManagedTransaction, email string) (*domain.User, error)
	Create(ctx context.Context, tx neo4j.ManagedTransaction, user domain.User) error
}

type TokenService interface {
	Generate(subject string, role string) (string, error)
}

type AuthService struct {
	graph  Graph
	users  UserRepository
	tokens TokenService
	logger *zap.Logger
}

func NewAuthService(graph Graph, users UserRepository, tokens TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		graph:  graph,
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a user with a bcrypt-hashed password. Email uniqueness
// is checked and the node created inside one transaction.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.UserRole) (domain.Purchaser, error) {
	var details []apperrors.ValidationDetail
	if email == "" {
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email is required"})
	}
	if password == "" {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password is required"})
	}
	if len(details) > 0 {
		return domain.Purchaser{}, apperrors.NewValidationError("validation failed", details...)
	}

	if role == "" {
		role = domain.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Purchaser{}, apperrors.NewInternalError("hashing password", err)
	}

	user := domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
	}

	_, err = s.graph.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error) {
		existing, err := s.users.FindByEmail(ctx, tx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewConflictError("email already registered")
		}
		return nil, s.users.Create(ctx, tx, user)
	})
	if err != nil {
		return domain.Purchaser{}, err
	}

	s.logger.Info("user registered", zap.String("email", email), zap.String("role", string(role)))
	return domain.Purchaser{Email: email, Name: name, Role: string(role)}, nil
}

// Login verifies credentials with a constant-time bcrypt comparison and
// issues a bearer token. Unknown email and wrong password produce the same
// error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	result, err := s.graph.ExecuteRead(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error) {
		return s.users.FindByEmail(ctx, tx, email)
	})
	if err != nil {
		return "", err
	}

	user, _ := result.(*domain.User)
	if user == nil {
		return "", apperrors.NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.NewUnauthorizedError("invalid credentials")
	}

	signed, err := s.tokens.Generate(user.Email, string(user.Role))
	if err != nil {
		return "", apperrors.NewInternalError("issuing token", err)
	}

	s.logger.Info("user logged in", zap.String("email", email))
	return signed, nil
}
