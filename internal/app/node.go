package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/adapters/catalog"  //nolint:depguard // Wired in app layer
	"go.trai.ch/larder/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/larder/internal/adapters/lockfile" //nolint:depguard // Wired in app layer
	"go.trai.ch/larder/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/larder/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/larder/internal/engine/installer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			lockfile.NodeID,
			catalog.NodeID,
			installer.NodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			manifests, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}

			lockStore, err := graft.Dep[ports.LockfileStore](ctx)
			if err != nil {
				return nil, err
			}

			sources, err := graft.Dep[ports.SourceFactory](ctx)
			if err != nil {
				return nil, err
			}

			core, err := graft.Dep[*installer.Installer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}

			return New(manifests, lockStore, sources, core, log, settings), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
