package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/adapters/config"
	"go.trai.ch/larder/internal/adapters/fs"
	"go.trai.ch/larder/internal/core/ports"
)

const NodeID graft.ID = "adapter.content_store"

func init() {
	graft.Register(graft.Node[ports.ContentStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.ContentStore, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(settings.StorePath(), hasher)
		},
	})
}
