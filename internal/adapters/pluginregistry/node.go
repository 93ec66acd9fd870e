package pluginregistry

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/labt-build/labt/internal/labthome"
)

// NodeID is the unique identifier for the plugin registry Graft node.
const NodeID graft.ID = "adapter.plugin_registry"

func init() {
	graft.Register(graft.Node[ports.PluginRegistry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PluginRegistry, error) {
			root, err := labthome.PluginsDir()
			if err != nil {
				return nil, err
			}
			if err := ensureDir(root); err != nil {
				return nil, err
			}
			return New(root), nil
		},
	})
}
