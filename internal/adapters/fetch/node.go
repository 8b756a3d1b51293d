package fetch

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/adapters/config"
	"go.trai.ch/larder/internal/core/ports"
)

const NodeID graft.ID = "adapter.downloader"

func init() {
	graft.Register(graft.Node[ports.Downloader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Downloader, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			client := &http.Client{Timeout: settings.RequestTimeout}
			return NewDownloader(client, settings.StashPath()), nil
		},
	})
}
