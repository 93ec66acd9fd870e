package sdktui

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/labt-build/labt/internal/core/ports"
)

// NodeID is the unique identifier for the SDK picker Graft node.
const NodeID graft.ID = "adapter.sdk_picker"

func init() {
	graft.Register(graft.Node[ports.SDKPicker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SDKPicker, error) {
			return NewPicker(), nil
		},
	})
}
