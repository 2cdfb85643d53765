package generator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/softmesh/internal/core/ports"
)

// NodeID is the unique identifier for the generator registry Graft node.
const NodeID graft.ID = "adapter.generators"

func init() {
	graft.Register(graft.Node[ports.GeneratorRegistry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GeneratorRegistry, error) {
			return NewRegistry()
		},
	})
}
