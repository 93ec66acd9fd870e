package projectfile

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/labt-build/labt/internal/adapters/logger"
	"github.com/labt-build/labt/internal/core/ports"
)

// NodeID is the unique identifier for the project store Graft node.
const NodeID graft.ID = "adapter.project_store"

func init() {
	graft.Register(graft.Node[ports.ProjectStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
