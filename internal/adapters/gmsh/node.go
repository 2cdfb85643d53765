package gmsh

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/softmesh/internal/adapters/config"
	"go.trai.ch/softmesh/internal/core/ports"
)

// NodeID is the unique identifier for the geometry kernel Graft node.
const NodeID graft.ID = "adapter.kernel"

func init() {
	graft.Register(graft.Node[ports.GeometryKernel]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.GeometryKernel, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return NewKernel(loader.Settings().GmshPath), nil
		},
	})
}
