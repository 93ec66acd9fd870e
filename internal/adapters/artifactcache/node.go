package artifactcache

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/labt-build/labt/internal/labthome"
)

// NodeID is the unique identifier for the artifact cache Graft node.
const NodeID graft.ID = "adapter.artifact_cache"

func init() {
	graft.Register(graft.Node[ports.ArtifactCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactCache, error) {
			dir, err := labthome.CacheDir()
			if err != nil {
				return nil, err
			}
			return New(dir), nil
		},
	})
}
