package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/softmesh/internal/core/ports"
)

// NodeID is the unique identifier for the mesh store Graft node.
const NodeID graft.ID = "adapter.mesh_store"

func init() {
	graft.Register(graft.Node[ports.MeshStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MeshStore, error) {
			return NewStore(), nil
		},
	})
}
