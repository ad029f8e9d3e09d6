package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the snapshot store Graft node.
const NodeID graft.ID = "adapter.snapshot_store"

func init() {
	graft.Register(graft.Node[ports.SnapshotStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SnapshotStore, error) {
			store, err := NewStore()
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
