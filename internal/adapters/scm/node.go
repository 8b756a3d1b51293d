package scm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/adapters/config"
	"go.trai.ch/larder/internal/core/ports"
)

const NodeID graft.ID = "adapter.scm_fetcher"

func init() {
	graft.Register(graft.Node[ports.ScmFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ScmFetcher, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewGitFetcher(settings.ScmCachePath(), settings.StashPath(), settings.RequestTimeout), nil
		},
	})
}
