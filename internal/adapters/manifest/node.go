package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/adapters/config"
	"go.trai.ch/larder/internal/core/ports"
)

const NodeID graft.ID = "adapter.manifest_loader"

func init() {
	graft.Register(graft.Node[ports.ManifestLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ManifestLoader, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(settings.DefaultSource), nil
		},
	})
}
