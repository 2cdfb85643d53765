package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	fsadapter "go.trai.ch/softmesh/internal/adapters/fs"
	"go.trai.ch/softmesh/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fsadapter.WalkerNodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			walker, err := graft.Dep[*fsadapter.Walker](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to determine working directory")
			}
			return NewLoader(cwd, walker)
		},
	})
}
