package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/core/ports"
)

const (
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.hasher"
	// ResolverNodeID is the unique identifier for the input resolver Graft node.
	ResolverNodeID graft.ID = "adapter.input_resolver"
	// CopierNodeID is the unique identifier for the payload copier Graft node.
	CopierNodeID graft.ID = "adapter.payload_copier"
)

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(NewWalker()), nil
		},
	})

	graft.Register(graft.Node[ports.InputResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.InputResolver, error) {
			return NewResolver(NewWalker()), nil
		},
	})

	graft.Register(graft.Node[ports.PayloadLoader]{
		ID:        CopierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PayloadLoader, error) {
			return NewCopier(), nil
		},
	})
}
