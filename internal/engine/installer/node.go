package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/adapters/cas"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/larder/internal/adapters/fetch"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/larder/internal/adapters/lockfile" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/larder/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/larder/internal/adapters/reporter" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/larder/internal/adapters/scm"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/larder/internal/adapters/solver"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/larder/internal/core/ports"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fetch.NodeID,
			cas.NodeID,
			solver.NodeID,
			scm.NodeID,
			lockfile.NodeID,
			reporter.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			downloader, err := graft.Dep[ports.Downloader](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ContentStore](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			fetcher, err := graft.Dep[ports.ScmFetcher](ctx)
			if err != nil {
				return nil, err
			}

			lockStore, err := graft.Dep[ports.LockfileStore](ctx)
			if err != nil {
				return nil, err
			}

			rep, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewInstaller(
				downloader,
				store,
				resolver,
				fetcher,
				lockStore,
				rep,
				log,
			), nil
		},
	})
}
