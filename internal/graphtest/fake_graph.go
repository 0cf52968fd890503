// Package graphtest provides in-memory stand-ins for the graph store
// boundary, used by service tests.
package graphtest

import (
	"context"

	"foodgraph/internal/infrastructure/graphdb"
)

// FakeGraph runs transactional work directly and records how each
// transaction ended. An error returned by the work function counts as a
// rollback, mirroring the managed-transaction contract of the real store.
type FakeGraph struct {
	Commits   int
	Rollbacks int

	// WriteErr, when set, fails ExecuteWrite before the work runs.
	WriteErr error
	// ReadErr, when set, fails ExecuteRead before the work runs.
	ReadErr error
}

func (g *FakeGraph) ExecuteWrite(ctx context.Context, work graphdb.TxWork) (any, error) {
	if g.WriteErr != nil {
		return nil, g.WriteErr
	}
	result, err := work(ctx, nil)
	if err != nil {
		g.Rollbacks++
		return nil, err
	}
	g.Commits++
	return result, nil
}

func (g *FakeGraph) ExecuteRead(ctx context.Context, work graphdb.TxWork) (any, error) {
	if g.ReadErr != nil {
		return nil, g.ReadErr
	}
	return work(ctx, nil)
}
