package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"foodgraph/internal/config"
	"foodgraph/internal/infrastructure/graphdb"
)

// SetupTestStore connects to a local Neo4j instance for integration tests.
// Expects a server on bolt://localhost:7687 (override with NEO4J_TEST_URI);
// skips the test when none is reachable.
func SetupTestStore(t *testing.T) *graphdb.Store {
	uri := os.Getenv("NEO4J_TEST_URI")
	if uri == "" {
		uri = "bolt://localhost:7687"
	}
	user := os.Getenv("NEO4J_TEST_USER")
	if user == "" {
		user = "neo4j"
	}
	password := os.Getenv("NEO4J_TEST_PASSWORD")
	if password == "" {
		password = "password"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := graphdb.NewStore(ctx, config.GraphConfig{
		URI:              uri,
		User:             user,
		Password:         password,
		OperationTimeout: 10 * time.Second,
	}, zap.NewNop())
	if err != nil {
		t.Skipf("test graph store not available: %v", err)
	}

	return store
}

// CleanupTestStore removes every node and relationship, then closes the store.
func CleanupTestStore(t *testing.T, store *graphdb.Store) {
	if store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := store.ExecuteWrite(ctx, func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
		return nil, err
	})
	if err != nil {
		t.Logf("failed to clean test graph: %v", err)
	}

	store.Close(ctx)
}
