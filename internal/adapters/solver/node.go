package solver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/core/ports"
)

const NodeID graft.ID = "adapter.resolver"

func init() {
	graft.Register(graft.Node[ports.Resolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Resolver, error) {
			return NewResolver(), nil
		},
	})
}
