package catalog

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/adapters/config"
	"go.trai.ch/larder/internal/adapters/logger"
	"go.trai.ch/larder/internal/core/ports"
)

const NodeID graft.ID = "adapter.source_factory"

func init() {
	graft.Register(graft.Node[ports.SourceFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.SourceFactory, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			client := &http.Client{Timeout: settings.RequestTimeout}
			return NewFactory(client, settings.CatalogCachePath(), settings.CatalogTTL, log), nil
		},
	})
}
