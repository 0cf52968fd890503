package graphdb

import (
	"context"
	"errors"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"foodgraph/internal/config"
	apperrors "foodgraph/internal/errors"
)

// TxWork is a unit of work running inside a managed transaction. Everything
// it writes commits or rolls back as one atomic batch.
type TxWork func(ctx context.Context, tx neo4j.ManagedTransaction) (any, error)

// Store wraps the Neo4j driver with per-operation sessions and a bounded
// timeout. Sessions are never shared across requests: each Execute* call
// opens one and closes it on every exit path.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	timeout  time.Duration
	logger   *zap.Logger
}

func NewStore(ctx context.Context, cfg config.GraphConfig, logger *zap.Logger) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, apperrors.NewUnavailableError("creating graph driver", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, apperrors.NewUnavailableError("verifying graph connectivity", err)
	}

	return &Store{
		driver:   driver,
		database: cfg.Database,
		timeout:  cfg.OperationTimeout,
		logger:   logger,
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// ExecuteWrite runs work inside a single write transaction scoped to a fresh
// session. A typed application error returned by work aborts the transaction
// and is passed through untouched.
func (s *Store) ExecuteWrite(ctx context.Context, work TxWork) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return work(ctx, tx)
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return result, nil
}

// ExecuteRead is the read-mode counterpart of ExecuteWrite.
func (s *Store) ExecuteRead(ctx context.Context, work TxWork) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return work(ctx, tx)
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return result, nil
}

func (s *Store) mapError(err error) error {
	if apperrors.IsClientError(err) {
		return err
	}
	if _, ok := apperrors.IsUnavailableError(err); ok {
		return err
	}
	if _, ok := apperrors.IsInternalError(err); ok {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.logger.Warn("graph operation timed out", zap.Error(err))
		return apperrors.NewUnavailableError("graph operation timed out", err)
	}
	if neo4j.IsRetryable(err) {
		s.logger.Warn("transient graph failure", zap.Error(err))
		return apperrors.NewUnavailableError("transient graph failure", err)
	}

	s.logger.Error("graph operation failed", zap.Error(err))
	return apperrors.NewInternalError("graph operation failed", err)
}
