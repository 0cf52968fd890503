package service

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"foodgraph/internal/domain"
	apperrors "foodgraph/internal/errors"
	"foodgraph/internal/graphtest"
)

type mockUserRepository struct {
	FindByEmailFunc func(ctx context.Context, tx neo4j.ManagedTransaction, email string) (*domain.User, error)
	CreateFunc      func(ctx context.Context, tx neo4j.ManagedTransaction, user domain.User) error

	createCalls int
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, tx neo4j.ManagedTransaction, email string) (*domain.User, error) {
	return m.FindByEmailFunc(ctx, tx, email)
}

func (m *mockUserRepository) Create(ctx context.Context, tx neo4j.ManagedTransaction, user domain.User) error {
	m.createCalls++
	return m.CreateFunc(ctx, tx, user)
}

type mockTokenService struct {
	GenerateFunc func(subject string, role string) (string, error)
}

func (m *mockTokenService) Generate(subject string, role string) (string, error) {
	return m.GenerateFunc(subject, role)
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	graph := &graphtest.FakeGraph{}
	var created domain.User
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, email string) (*domain.User, error) {
			return nil, nil
		},
		CreateFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, user domain.User) error {
			created = user
			return nil
		},
	}

	svc := NewAuthService(graph, repo, &mockTokenService{}, zap.NewNop())
	purchaser, err := svc.Register(context.Background(), "Ada", "ada@example.com", "s3cret", "")

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", purchaser.Email)
	assert.Equal(t, string(domain.RoleUser), purchaser.Role)
	assert.NotEqual(t, "s3cret", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret")))
	assert.Equal(t, 1, graph.Commits)
}

func TestRegister_ConflictOnDuplicateEmail(t *testing.T) {
	graph := &graphtest.FakeGraph{}
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, email string) (*domain.User, error) {
			return &domain.User{Email: email}, nil
		},
		CreateFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, user domain.User) error {
			return nil
		},
	}

	svc := NewAuthService(graph, repo, &mockTokenService{}, zap.NewNop())
	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "s3cret", domain.RoleUser)

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Zero(t, repo.createCalls)
	assert.Equal(t, 1, graph.Rollbacks)
}

func TestRegister_ValidatesRequiredFields(t *testing.T) {
	graph := &graphtest.FakeGraph{}
	svc := NewAuthService(graph, &mockUserRepository{}, &mockTokenService{}, zap.NewNop())

	_, err := svc.Register(context.Background(), "Ada", "", "", domain.RoleUser)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Details, 2)
	assert.Zero(t, graph.Commits)
}

func TestLogin_IssuesTokenForValidCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, email string) (*domain.User, error) {
			return &domain.User{
				Email:        email,
				PasswordHash: string(hash),
				Role:         domain.RoleAdmin,
			}, nil
		},
	}
	tokens := &mockTokenService{
		GenerateFunc: func(subject string, role string) (string, error) {
			assert.Equal(t, "ada@example.com", subject)
			assert.Equal(t, string(domain.RoleAdmin), role)
			return "signed-token", nil
		},
	}

	svc := NewAuthService(&graphtest.FakeGraph{}, repo, tokens, zap.NewNop())
	signed, err := svc.Login(context.Background(), "ada@example.com", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, "signed-token", signed)
}

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, email string) (*domain.User, error) {
			return &domain.User{Email: email, PasswordHash: string(hash)}, nil
		},
	}

	svc := NewAuthService(&graphtest.FakeGraph{}, repo, &mockTokenService{}, zap.NewNop())
	_, err = svc.Login(context.Background(), "ada@example.com", "wrong")

	ue, ok := apperrors.IsUnauthorizedError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid credentials", ue.Message)
}

func TestLogin_UnknownEmailIsUnauthorized(t *testing.T) {
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, tx neo4j.ManagedTransaction, email string) (*domain.User, error) {
			return nil, nil
		},
	}

	svc := NewAuthService(&graphtest.FakeGraph{}, repo, &mockTokenService{}, zap.NewNop())
	_, err := svc.Login(context.Background(), "ghost@example.com", "s3cret")

	ue, ok := apperrors.IsUnauthorizedError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid credentials", ue.Message)
}
