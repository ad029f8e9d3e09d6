package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/cas"
	"go.trai.ch/strata/internal/adapters/config"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/adapters/logger"
	"go.trai.ch/strata/internal/adapters/syspkg"
	"go.trai.ch/strata/internal/adapters/uv"
	"go.trai.ch/strata/internal/core/ports"
)

// Components bundles the fully wired application for the CLI entry point.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			syspkg.NodeID,
			uv.NodeID,
			fs.CopierNodeID,
			fs.HasherNodeID,
			fs.ResolverNodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.RecipeLoader](ctx)
			if err != nil {
				return nil, err
			}
			installer, err := graft.Dep[ports.PackageInstaller](ctx)
			if err != nil {
				return nil, err
			}
			synchronizer, err := graft.Dep[ports.LockSynchronizer](ctx)
			if err != nil {
				return nil, err
			}
			payload, err := graft.Dep[ports.PayloadLoader](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.SnapshotStore](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.InputResolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			application := New(loader, installer, synchronizer, payload, store, hasher, resolver, log)
			return &Components{
				App:    application,
				Logger: log,
			}, nil
		},
	})
}
