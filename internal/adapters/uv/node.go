package uv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/shell"
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the lock synchronizer Graft node.
const NodeID graft.ID = "adapter.lock_synchronizer"

func init() {
	graft.Register(graft.Node[ports.LockSynchronizer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.LockSynchronizer, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewSynchronizer(executor), nil
		},
	})
}
